package selection

import (
	"slices"
	"sync"

	"github.com/matst80/slask-table/pkg/common"
)

type EventKind uint8

const (
	EventSelectionChanged EventKind = iota
	EventDoubleClick
)

func (k EventKind) String() string {
	if k == EventDoubleClick {
		return "double_click"
	}
	return "selection_changed"
}

// Event is emitted after a selection change or a row double click.
// Selection is a copy of the selection after the event.
type Event[R any] struct {
	Kind      EventKind
	Row       R
	Selection []R
}

// Store owns the ordered list of selected rows. All mutations go through its
// methods. Listeners run after the state lock has been released but before the
// next mutation starts, so they see events in mutation order. Listeners may
// read the store but must not mutate it synchronously.
type Store[R any, K comparable] struct {
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	rowId     IdFunc[R, K]
	same      func(a, b R) bool
	selected  []R
	listeners common.Listeners[Event[R]]
}

type StoreOption[R any] func(*storeOptions[R])

type storeOptions[R any] struct {
	same func(a, b R) bool
}

// WithIdentity sets the function deciding whether two rows with the same id
// are the same object. ToggleMulti refreshes instead of removing when it
// returns false. Without it, rows sharing an id are always the same object.
func WithIdentity[R any](same func(a, b R) bool) StoreOption[R] {
	return func(o *storeOptions[R]) {
		o.same = same
	}
}

func NewStore[R any, K comparable](rowId IdFunc[R, K], seed []R, opts ...StoreOption[R]) *Store[R, K] {
	o := storeOptions[R]{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[R, K]{
		rowId:    rowId,
		same:     o.same,
		selected: Dedupe(seed, rowId),
	}
}

func (s *Store[R, K]) RowId(row R) K {
	return s.rowId(row)
}

// Subscribe registers fn for selection and double click events.
func (s *Store[R, K]) Subscribe(fn func(Event[R])) func() {
	return s.listeners.Add(fn)
}

// update applies fn under the write lock and notifies listeners when the ids
// or objects in the selection changed.
func (s *Store[R, K]) update(row R, fn func(current []R) []R) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	before := s.selected
	s.selected = fn(s.selected)
	changed := !s.equalLocked(before, s.selected)
	snapshot := slices.Clone(s.selected)
	s.mu.Unlock()

	if changed {
		s.listeners.Notify(Event[R]{Kind: EventSelectionChanged, Row: row, Selection: snapshot})
	}
}

func (s *Store[R, K]) equalLocked(a, b []R) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if s.rowId(a[i]) != s.rowId(b[i]) {
			return false
		}
		if s.same != nil && !s.same(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ToggleMulti adds, refreshes or removes row and returns it.
func (s *Store[R, K]) ToggleMulti(row R) R {
	s.update(row, func(current []R) []R {
		return ToggleMulti(current, row, s.rowId, s.same)
	})
	return row
}

// SelectSingle makes row the only selected row, or clears the selection when
// row already is the only selected row.
func (s *Store[R, K]) SelectSingle(row R) {
	s.update(row, func(current []R) []R {
		return SelectSingle(current, row, s.rowId)
	})
}

// Clear empties the selection.
func (s *Store[R, K]) Clear() {
	var zero R
	s.update(zero, func([]R) []R {
		return []R{}
	})
}

// SelectAll replaces the selection with every row in rows.
func (s *Store[R, K]) SelectAll(rows []R) {
	var zero R
	s.update(zero, func([]R) []R {
		return Dedupe(rows, s.rowId)
	})
}

// SyncWithDataset drops selected rows whose id is missing from all and swaps
// the remaining ones for the current objects. Must run whenever the backing
// dataset changes.
func (s *Store[R, K]) SyncWithDataset(all []R) {
	var zero R
	s.update(zero, func(current []R) []R {
		return SyncWithDataset(current, all, s.rowId)
	})
}

func (s *Store[R, K]) IsSelected(row R) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Contains(s.selected, row, s.rowId)
}

// DoubleClick forwards row to listeners without touching the selection.
func (s *Store[R, K]) DoubleClick(row R) R {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.listeners.Notify(Event[R]{Kind: EventDoubleClick, Row: row, Selection: s.Selected()})
	return row
}

// Selected returns a copy of the current selection.
func (s *Store[R, K]) Selected() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.selected)
}

func (s *Store[R, K]) SelectedIds() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Ids(s.selected, s.rowId)
}

func (s *Store[R, K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}
