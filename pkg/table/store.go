// Package table holds the column and sorting state of a data table and derives
// the header and row projections a renderer needs.
package table

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/sorting"
	"github.com/matst80/slask-table/pkg/types"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnknownRow    = errors.New("unknown row")
)

// TableState is the visible column order and the active sorting plan.
type TableState struct {
	Order       []string          `json:"order"`
	SortingPlan types.SortingPlan `json:"sortingPlan"`
}

func newState[R any](columns types.ColumnSet[R]) TableState {
	return TableState{
		Order:       columns.VisibleOrder(),
		SortingPlan: types.SortingPlan{},
	}
}

func (s TableState) clone() TableState {
	return TableState{
		Order:       slices.Clone(s.Order),
		SortingPlan: s.SortingPlan.Clone(),
	}
}

type ChangeKind uint8

const (
	ColumnsChanged ChangeKind = iota
	SortingChanged
	RowsChanged
	SelectionChanged
	RowDoubleClicked
)

func (k ChangeKind) String() string {
	switch k {
	case ColumnsChanged:
		return "columns"
	case SortingChanged:
		return "sorting"
	case RowsChanged:
		return "rows"
	case SelectionChanged:
		return "selection"
	case RowDoubleClicked:
		return "double_click"
	default:
		return "unknown"
	}
}

// StateEvent is emitted by Store after Configure (ColumnsChanged) and after a
// sorting plan change (SortingChanged).
type StateEvent struct {
	Kind  ChangeKind
	State TableState
}

// Header is one header cell in visual order.
type Header[R any] struct {
	Column  *types.Column[R]
	Sorting types.ColumnIdSorting
}

// CellData is what a renderer needs to draw one cell.
type CellData[R any] struct {
	Row           R
	Selected      bool
	SortDirection types.SortDirection
}

// Cell pairs a column with the data of one row.
type Cell[R any] struct {
	Column *types.Column[R]
	Index  int
	Data   CellData[R]
}

// RowView is one row in sorted order with its cells in column order.
type RowView[R any] struct {
	Index    int
	Row      R
	Selected bool
	Cells    []Cell[R]
}

// SelectionLookup answers selection membership for the row projection.
type SelectionLookup[R any] interface {
	IsSelected(row R) bool
}

type noSelection[R any] struct{}

func (noSelection[R]) IsSelected(R) bool { return false }

// Store owns the column set and TableState. The only mutations are
// Configure and SortingChanged.
type Store[R any] struct {
	// notifyMu orders listener calls the same way mutations are ordered.
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	columns   types.ColumnSet[R]
	state     TableState
	sorter    *sorting.CachedSorter[R]
	listeners common.Listeners[StateEvent]
}

func NewStore[R any](columns types.ColumnSet[R]) *Store[R] {
	return &Store[R]{
		columns: columns,
		state:   newState(columns),
		sorter:  sorting.NewCachedSorter[R](),
	}
}

// Subscribe registers fn for every state change.
func (s *Store[R]) Subscribe(fn func(StateEvent)) func() {
	return s.listeners.Add(fn)
}

// Configure replaces the column set, recomputes the order and resets sorting.
func (s *Store[R]) Configure(columns types.ColumnSet[R]) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.columns = columns
	s.state = newState(columns)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.sorter.Invalidate()
	s.listeners.Notify(StateEvent{Kind: ColumnsChanged, State: snapshot})
}

// SortingChanged applies a header activation to the sorting plan.
func (s *Store[R]) SortingChanged(activated types.ColumnIdSorting) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := sorting.ReducePlan(s.state.SortingPlan, activated)
	if next.Equal(s.state.SortingPlan) {
		s.mu.Unlock()
		return
	}
	s.state = TableState{Order: s.state.Order, SortingPlan: next}
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.listeners.Notify(StateEvent{Kind: SortingChanged, State: snapshot})
}

// ToggleSort emits the activation of the header of columnId. Hidden columns
// have no header and are rejected like unknown ones.
func (s *Store[R]) ToggleSort(columnId string) error {
	s.mu.RLock()
	var col *types.Column[R]
	ok := slices.Contains(s.state.Order, columnId)
	if ok {
		col = s.columns.MustGet(columnId)
	}
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnId)
	}
	s.SortingChanged(col.Activation())
	return nil
}

func (s *Store[R]) State() TableState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store[R]) Columns() types.ColumnSet[R] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns
}

// ResolvedPlan pairs each plan entry with its column. Entries for columns that
// are not in the set are skipped.
func (s *Store[R]) ResolvedPlan() []types.ColumnSorting[R] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolvedPlanLocked()
}

func (s *Store[R]) resolvedPlanLocked() []types.ColumnSorting[R] {
	ret := make([]types.ColumnSorting[R], 0, len(s.state.SortingPlan))
	for _, entry := range s.state.SortingPlan {
		if col, ok := s.columns.Get(entry.ColumnId); ok {
			ret = append(ret, types.ColumnSorting[R]{Column: col, Direction: entry.Direction})
		}
	}
	return ret
}

// Headers returns the visible columns in order with their current sorting.
func (s *Store[R]) Headers() []Header[R] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]Header[R], len(s.state.Order))
	for i, id := range s.state.Order {
		current, _ := s.state.SortingPlan.Lookup(id)
		ret[i] = Header[R]{
			Column:  s.columns.MustGet(id),
			Sorting: current,
		}
	}
	return ret
}

// Rows projects rows for rendering. generation identifies the dataset
// snapshot, rows with the same generation are assumed unchanged.
func (s *Store[R]) Rows(generation uint64, rows []R, selected SelectionLookup[R]) []RowView[R] {
	if selected == nil {
		selected = noSelection[R]{}
	}

	s.mu.RLock()
	columns := make([]*types.Column[R], len(s.state.Order))
	directions := make([]types.SortDirection, len(s.state.Order))
	for i, id := range s.state.Order {
		col := s.columns.MustGet(id)
		columns[i] = col
		directions[i] = cellDirection(col, s.state.SortingPlan)
	}
	key := s.state.SortingPlan.Clone()
	resolved := s.resolvedPlanLocked()
	s.mu.RUnlock()

	sorted := s.sorter.Sort(generation, key, rows, resolved)

	ret := make([]RowView[R], len(sorted))
	for i, row := range sorted {
		isSelected := selected.IsSelected(row)
		cells := make([]Cell[R], len(columns))
		for c, col := range columns {
			cells[c] = Cell[R]{
				Column: col,
				Index:  i,
				Data: CellData[R]{
					Row:           row,
					Selected:      isSelected,
					SortDirection: directions[c],
				},
			}
		}
		ret[i] = RowView[R]{Index: i, Row: row, Selected: isSelected, Cells: cells}
	}
	return ret
}

// cellDirection is the plan direction for columns in the plan and the
// column's disabled/none state otherwise.
func cellDirection[R any](col *types.Column[R], plan types.SortingPlan) types.SortDirection {
	if entry, ok := plan.Lookup(col.Id); ok {
		return entry.Direction
	}
	if col.SortDirectionDefault == types.SortDisabled {
		return types.SortDisabled
	}
	return types.SortNone
}
