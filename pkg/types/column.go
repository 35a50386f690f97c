package types

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	ErrEmptyColumnId   = errors.New("column id must not be empty")
	ErrDuplicateColumn = errors.New("duplicate column id")
)

// Column describes one table column for rows of type R. Columns are never
// mutated once they are part of a ColumnSet.
type Column[R any] struct {
	Id    string
	Title string
	// Extractor projects a row to the string used for display and default sorting.
	Extractor func(row R) string
	MinWidth  int
	MaxWidth  int
	Hidden    bool
	// Position defines the default visual order.
	Position             int
	SortDirectionDefault SortDirection
	// Comparator takes precedence over Extractor when sorting.
	Comparator func(a, b R) int
}

// Activation is the sorting a header click on this column emits.
func (c *Column[R]) Activation() ColumnIdSorting {
	return ColumnIdSorting{ColumnId: c.Id, Direction: c.SortDirectionDefault}
}

func (c *Column[R]) Sortable() bool {
	return c.SortDirectionDefault != SortDisabled && (c.Comparator != nil || c.Extractor != nil)
}

// Value returns the extracted display value or an empty string.
func (c *Column[R]) Value(row R) string {
	if c.Extractor == nil {
		return ""
	}
	return c.Extractor(row)
}

// ColumnSorting is a plan entry resolved to its column.
type ColumnSorting[R any] struct {
	Column    *Column[R]
	Direction SortDirection
}

// ColumnSet is an immutable, insertion ordered set of columns keyed by id.
type ColumnSet[R any] struct {
	columns []*Column[R]
	byId    map[string]*Column[R]
}

func NewColumnSet[R any](columns ...Column[R]) (ColumnSet[R], error) {
	set := ColumnSet[R]{
		columns: make([]*Column[R], 0, len(columns)),
		byId:    make(map[string]*Column[R], len(columns)),
	}
	for i := range columns {
		col := columns[i]
		if col.Id == "" {
			return ColumnSet[R]{}, fmt.Errorf("column %d: %w", i, ErrEmptyColumnId)
		}
		if _, found := set.byId[col.Id]; found {
			return ColumnSet[R]{}, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Id)
		}
		set.columns = append(set.columns, &col)
		set.byId[col.Id] = &col
	}
	return set, nil
}

// MustColumnSet is NewColumnSet for statically declared columns.
func MustColumnSet[R any](columns ...Column[R]) ColumnSet[R] {
	set, err := NewColumnSet(columns...)
	if err != nil {
		panic(err)
	}
	return set
}

func (s ColumnSet[R]) Len() int {
	return len(s.columns)
}

func (s ColumnSet[R]) Get(id string) (*Column[R], bool) {
	col, ok := s.byId[id]
	return col, ok
}

// MustGet panics when id is unknown, callers only pass ids derived from this set.
func (s ColumnSet[R]) MustGet(id string) *Column[R] {
	col, ok := s.byId[id]
	if !ok {
		panic(fmt.Sprintf("column %q missing from column set", id))
	}
	return col
}

// All returns the columns in insertion order.
func (s ColumnSet[R]) All() []*Column[R] {
	return slices.Clone(s.columns)
}

// Columns returns copies of the column definitions, in insertion order.
func (s ColumnSet[R]) Columns() []Column[R] {
	ret := make([]Column[R], len(s.columns))
	for i, c := range s.columns {
		ret[i] = *c
	}
	return ret
}

// VisibleOrder returns the ids of non hidden columns ordered by Position.
// Columns with equal positions keep their insertion order.
func (s ColumnSet[R]) VisibleOrder() []string {
	visible := make([]*Column[R], 0, len(s.columns))
	for _, c := range s.columns {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	slices.SortStableFunc(visible, func(a, b *Column[R]) int {
		return cmp.Compare(a.Position, b.Position)
	})
	ret := make([]string, len(visible))
	for i, c := range visible {
		ret[i] = c.Id
	}
	return ret
}

// MinPosition returns the lowest Position in the set, 0 for an empty set.
func (s ColumnSet[R]) MinPosition() int {
	if len(s.columns) == 0 {
		return 0
	}
	minPos := math.MaxInt
	for _, c := range s.columns {
		minPos = min(minPos, c.Position)
	}
	return minPos
}

// With returns a new set with col appended.
func (s ColumnSet[R]) With(col Column[R]) (ColumnSet[R], error) {
	return NewColumnSet(append(s.Columns(), col)...)
}
