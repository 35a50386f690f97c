package sorting

import (
	"slices"
	"strings"
	"sync"

	"github.com/matst80/slask-table/pkg/types"
)

// SortedBy returns rows ordered by the first entry of plan. Rows are returned
// unchanged when the plan is empty, the direction is not sorted or the column
// has neither comparator nor extractor. The input slice is never modified.
func SortedBy[R any](rows []R, plan []types.ColumnSorting[R]) []R {
	if len(plan) == 0 {
		return rows
	}
	fn, ok := comparatorFor(plan[0])
	if !ok {
		return rows
	}
	ret := slices.Clone(rows)
	slices.SortStableFunc(ret, fn)
	return ret
}

func comparatorFor[R any](entry types.ColumnSorting[R]) (func(a, b R) int, bool) {
	col := entry.Column
	if col == nil || !entry.Direction.Sorted() {
		return nil, false
	}
	desc := entry.Direction == types.SortDesc
	if col.Comparator != nil {
		if desc {
			return Reverse(col.Comparator), true
		}
		return col.Comparator, true
	}
	if col.Extractor != nil {
		extract := col.Extractor
		return func(a, b R) int {
			if desc {
				return strings.Compare(extract(b), extract(a))
			}
			return strings.Compare(extract(a), extract(b))
		}, true
	}
	return nil, false
}

// CachedSorter remembers the last sorted result for a dataset generation and plan.
type CachedSorter[R any] struct {
	mu         sync.RWMutex
	generation uint64
	plan       types.SortingPlan
	sorted     []R
	dirty      bool
}

func NewCachedSorter[R any]() *CachedSorter[R] {
	return &CachedSorter[R]{
		dirty: true,
	}
}

func (s *CachedSorter[R]) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Invalidate drops the cached result, used when columns are reconfigured.
func (s *CachedSorter[R]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	s.sorted = nil
}

// Sort returns SortedBy(rows, resolved), reusing the previous result when
// generation and key are unchanged.
func (s *CachedSorter[R]) Sort(generation uint64, key types.SortingPlan, rows []R, resolved []types.ColumnSorting[R]) []R {
	s.mu.RLock()
	if !s.dirty && s.generation == generation && s.plan.Equal(key) {
		sorted := s.sorted
		s.mu.RUnlock()
		return sorted
	}
	s.mu.RUnlock() // release before the sort

	sorted := SortedBy(rows, resolved)

	s.mu.Lock()
	s.generation = generation
	s.plan = key.Clone()
	s.sorted = sorted
	s.dirty = false
	s.mu.Unlock()

	return sorted
}
