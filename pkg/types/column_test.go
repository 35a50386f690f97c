package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRow struct {
	name string
	age  int
}

func TestNewColumnSetRejectsDuplicates(t *testing.T) {
	_, err := NewColumnSet(
		Column[testRow]{Id: "name"},
		Column[testRow]{Id: "name"},
	)
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("Expected ErrDuplicateColumn, got %v", err)
	}

	_, err = NewColumnSet(Column[testRow]{Title: "no id"})
	assert.ErrorIs(t, err, ErrEmptyColumnId)
}

func TestVisibleOrder(t *testing.T) {
	set := MustColumnSet(
		Column[testRow]{Id: "c", Position: 3},
		Column[testRow]{Id: "hidden", Position: 0, Hidden: true},
		Column[testRow]{Id: "a", Position: 1},
		Column[testRow]{Id: "b", Position: 1},
	)

	assert.Equal(t, []string{"a", "b", "c"}, set.VisibleOrder())
	assert.Equal(t, 0, set.MinPosition())
	assert.Equal(t, 4, set.Len())
}

func TestVisibleOrderExtremePositions(t *testing.T) {
	set := MustColumnSet(
		Column[testRow]{Id: "last", Position: math.MaxInt},
		Column[testRow]{Id: "first", Position: math.MinInt},
		Column[testRow]{Id: "middle", Position: 0},
	)
	assert.Equal(t, []string{"first", "middle", "last"}, set.VisibleOrder())
	assert.Equal(t, math.MinInt, set.MinPosition())
}

func TestColumnSetWithKeepsOriginal(t *testing.T) {
	set := MustColumnSet(Column[testRow]{Id: "name", Position: 1})
	next, err := set.With(Column[testRow]{Id: "age", Position: 2})
	assert.NoError(t, err)

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, 2, next.Len())

	_, err = next.With(Column[testRow]{Id: "age"})
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestMustGetPanicsOnMissingColumn(t *testing.T) {
	set := MustColumnSet(Column[testRow]{Id: "name"})
	assert.Panics(t, func() {
		set.MustGet("age")
	})
	assert.Equal(t, "name", set.MustGet("name").Id)
}

func TestColumnSortable(t *testing.T) {
	extract := func(r testRow) string { return r.name }
	tests := []struct {
		col  Column[testRow]
		want bool
	}{
		{Column[testRow]{Id: "a", SortDirectionDefault: SortNone}, false},
		{Column[testRow]{Id: "b", SortDirectionDefault: SortNone, Extractor: extract}, true},
		{Column[testRow]{Id: "c", SortDirectionDefault: SortDisabled, Extractor: extract}, false},
		{Column[testRow]{Id: "d", SortDirectionDefault: SortAsc, Comparator: func(a, b testRow) int { return a.age - b.age }}, true},
	}
	for _, tt := range tests {
		if got := tt.col.Sortable(); got != tt.want {
			t.Errorf("Column(%s).Sortable() = %v, want %v", tt.col.Id, got, tt.want)
		}
	}
}

func TestActivationCarriesDefault(t *testing.T) {
	col := Column[testRow]{Id: "age", SortDirectionDefault: SortDesc}
	assert.Equal(t, ColumnIdSorting{ColumnId: "age", Direction: SortDesc}, col.Activation())
}
