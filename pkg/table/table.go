package table

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/selection"
	"github.com/matst80/slask-table/pkg/types"
)

// Change tells subscribers which projection to recompute. Row is set for
// selection and double click changes.
type Change[R any] struct {
	Kind      ChangeKind
	Row       R
	State     TableState
	Selection []R
}

type Options[R any, K comparable] struct {
	Columns []types.Column[R]
	RowId   selection.IdFunc[R, K]
	// SameRow tells two rows sharing an id apart, see selection.WithIdentity.
	SameRow          func(a, b R) bool
	SelectionMode    types.SelectionMode
	SelectionMethod  types.SelectionMethod
	InitialSelection []R
	Rows             []R
}

// Table wires the column store, the selection store and the selection
// strategy to a dataset.
type Table[R any, K comparable] struct {
	mu         sync.RWMutex
	rows       []R
	byId       map[K]int
	generation uint64
	base       types.ColumnSet[R]

	state     *Store[R]
	selection *selection.Store[R, K]
	strategy  selection.Strategy[R, K]
	listeners common.Listeners[Change[R]]
}

func New[R any, K comparable](opts Options[R, K]) (*Table[R, K], error) {
	if opts.RowId == nil {
		return nil, fmt.Errorf("table: row id function is required")
	}
	base, err := types.NewColumnSet(opts.Columns...)
	if err != nil {
		return nil, err
	}
	storeOpts := []selection.StoreOption[R]{}
	if opts.SameRow != nil {
		storeOpts = append(storeOpts, selection.WithIdentity(opts.SameRow))
	}
	t := &Table[R, K]{
		base:      base,
		selection: selection.NewStore(opts.RowId, opts.InitialSelection, storeOpts...),
	}
	t.strategy = selection.NewStrategy(opts.SelectionMode, opts.SelectionMethod, t.selection)
	if t.strategy.Kind() == selection.StrategyNone {
		t.selection.Clear()
	}
	columns, err := t.strategy.Columns(base)
	if err != nil {
		return nil, err
	}
	t.state = NewStore(columns)
	t.setRowsLocked(opts.Rows)
	if opts.Rows != nil {
		t.selection.SyncWithDataset(t.rows)
	}

	t.state.Subscribe(func(e StateEvent) {
		t.listeners.Notify(Change[R]{Kind: e.Kind, State: e.State})
	})
	t.selection.Subscribe(func(e selection.Event[R]) {
		kind := SelectionChanged
		if e.Kind == selection.EventDoubleClick {
			kind = RowDoubleClicked
		}
		t.listeners.Notify(Change[R]{Kind: kind, Row: e.Row, Selection: e.Selection})
	})
	return t, nil
}

// Subscribe registers fn for every change of the table.
func (t *Table[R, K]) Subscribe(fn func(Change[R])) func() {
	return t.listeners.Add(fn)
}

func (t *Table[R, K]) setRowsLocked(rows []R) {
	t.rows = slices.Clone(rows)
	t.byId = make(map[K]int, len(rows))
	for i, r := range t.rows {
		t.byId[t.selection.RowId(r)] = i
	}
	t.generation++
}

// SetRows replaces the dataset and drops selected rows that no longer exist.
func (t *Table[R, K]) SetRows(rows []R) {
	t.mu.Lock()
	t.setRowsLocked(rows)
	current := t.rows
	t.mu.Unlock()

	t.selection.SyncWithDataset(current)
	t.listeners.Notify(Change[R]{Kind: RowsChanged})
}

// Rows returns the dataset in its original order.
func (t *Table[R, K]) Rows() []R {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows)
}

func (t *Table[R, K]) RowById(id K) (R, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.byId[id]
	if !ok {
		var zero R
		return zero, false
	}
	return t.rows[i], true
}

func (t *Table[R, K]) mustRow(id K) (R, error) {
	row, ok := t.RowById(id)
	if !ok {
		return row, fmt.Errorf("%w: %v", ErrUnknownRow, id)
	}
	return row, nil
}

// Configure replaces the table columns. Sorting is reset.
func (t *Table[R, K]) Configure(columns []types.Column[R]) error {
	base, err := types.NewColumnSet(columns...)
	if err != nil {
		return err
	}
	withStrategy, err := t.strategy.Columns(base)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.base = base
	t.mu.Unlock()
	t.state.Configure(withStrategy)
	return nil
}

// Columns returns the configured columns including any injected by the
// selection strategy.
func (t *Table[R, K]) Columns() types.ColumnSet[R] {
	return t.state.Columns()
}

// BaseColumns returns the columns as passed to New or Configure.
func (t *Table[R, K]) BaseColumns() types.ColumnSet[R] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.base
}

func (t *Table[R, K]) State() TableState {
	return t.state.State()
}

func (t *Table[R, K]) Strategy() selection.Strategy[R, K] {
	return t.strategy
}

func (t *Table[R, K]) Headers() []Header[R] {
	return t.state.Headers()
}

// RowViews projects the current dataset in sorted order.
func (t *Table[R, K]) RowViews() []RowView[R] {
	t.mu.RLock()
	rows := t.rows
	generation := t.generation
	t.mu.RUnlock()
	return t.state.Rows(generation, rows, t.selection)
}

// SortedRows returns the dataset in sorted order.
func (t *Table[R, K]) SortedRows() []R {
	views := t.RowViews()
	ret := make([]R, len(views))
	for i, v := range views {
		ret[i] = v.Row
	}
	return ret
}

func (t *Table[R, K]) Selection() []R {
	return t.selection.Selected()
}

func (t *Table[R, K]) SelectedIds() []K {
	return t.selection.SelectedIds()
}

func (t *Table[R, K]) IsSelected(row R) bool {
	return t.selection.IsSelected(row)
}

// ToggleSort handles a click on the header of columnId.
func (t *Table[R, K]) ToggleSort(columnId string) error {
	return t.state.ToggleSort(columnId)
}

// SortingChanged applies an activation emitted by a header renderer.
func (t *Table[R, K]) SortingChanged(activated types.ColumnIdSorting) {
	t.state.SortingChanged(activated)
}

// ClickRow routes a row click through the selection strategy. It reports
// whether the strategy handled the click.
func (t *Table[R, K]) ClickRow(id K) (bool, error) {
	row, err := t.mustRow(id)
	if err != nil {
		return false, err
	}
	return t.strategy.RowClicked(row), nil
}

func (t *Table[R, K]) ToggleCheckbox(id K) (bool, error) {
	row, err := t.mustRow(id)
	if err != nil {
		return false, err
	}
	return t.strategy.CheckboxToggled(row), nil
}

// ToggleAll handles the header checkbox.
func (t *Table[R, K]) ToggleAll(checked bool) bool {
	return t.strategy.HeaderCheckboxToggled(t.Rows(), checked)
}

func (t *Table[R, K]) AllChecked() bool {
	return t.strategy.HeaderChecked(t.Rows())
}

// DoubleClickRow forwards a double click to subscribers.
func (t *Table[R, K]) DoubleClickRow(id K) (R, error) {
	row, err := t.mustRow(id)
	if err != nil {
		return row, err
	}
	return t.selection.DoubleClick(row), nil
}
