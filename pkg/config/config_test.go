package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matst80/slask-table/pkg/types"
	"github.com/stretchr/testify/assert"
)

type item struct {
	name  string
	price int
}

func itemColumns() types.ColumnSet[item] {
	return types.MustColumnSet(
		types.Column[item]{Id: "name", Title: "Name", Position: 0, SortDirectionDefault: types.SortNone},
		types.Column[item]{Id: "price", Title: "Price", Position: 1, SortDirectionDefault: types.SortNone, MinWidth: 4},
	)
}

const sample = `
selectionMode: multi
selectionMethod: checkbox
columns:
  - id: price
    title: Cost
    position: -1
    sort: disabled
    maxWidth: 10
  - id: name
    hidden: true
`

func TestParseAndApply(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, types.SelectionMulti, cfg.SelectionMode)
	assert.Equal(t, types.SelectByCheckbox, cfg.SelectionMethod)

	base := itemColumns()
	set, err := Apply(cfg, base)
	assert.NoError(t, err)

	price := set.MustGet("price")
	assert.Equal(t, "Cost", price.Title)
	assert.Equal(t, -1, price.Position)
	assert.Equal(t, types.SortDisabled, price.SortDirectionDefault)
	assert.Equal(t, 4, price.MinWidth)
	assert.Equal(t, 10, price.MaxWidth)
	assert.Equal(t, []string{"price"}, set.VisibleOrder())

	assert.Equal(t, "Price", base.MustGet("price").Title)
	assert.False(t, base.MustGet("name").Hidden)
}

func TestValidate(t *testing.T) {
	minWidth, maxWidth := 10, 5
	cases := []TableConfig{
		{Columns: []ColumnConfig{{Id: "missing"}}},
		{Columns: []ColumnConfig{{Id: ""}}},
		{Columns: []ColumnConfig{{Id: "name"}, {Id: "name"}}},
		{Columns: []ColumnConfig{{Id: "price", MinWidth: &minWidth, MaxWidth: &maxWidth}}},
	}
	for _, cfg := range cases {
		_, err := Apply(&cfg, itemColumns())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestApplyChecksMergedWidths(t *testing.T) {
	set := types.MustColumnSet(
		types.Column[item]{Id: "title", MinWidth: 12, MaxWidth: 40},
	)
	for _, doc := range []string{
		"columns:\n  - id: title\n    minWidth: 60\n",
		"columns:\n  - id: title\n    maxWidth: 8\n",
	} {
		cfg, err := Parse([]byte(doc))
		if !assert.NoError(t, err) {
			continue
		}
		_, err = Apply(cfg, set)
		assert.ErrorIs(t, err, ErrInvalidConfig, doc)
	}

	cfg, err := Parse([]byte("columns:\n  - id: title\n    maxWidth: 0\n    minWidth: 60\n"))
	assert.NoError(t, err)
	applied, err := Apply(cfg, set)
	assert.NoError(t, err)
	assert.Equal(t, 60, applied.MustGet("title").MinWidth)
}

func TestParseRejectsUnknownEnums(t *testing.T) {
	_, err := Parse([]byte("selectionMode: many\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("columns:\n  - id: a\n    sort: sideways\n"))
	assert.Error(t, err)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "table.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, types.SelectionNone, cfg.SelectionMode)

	path := filepath.Join(t.TempDir(), "table.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	cfg, err = LoadOptional(path)
	assert.NoError(t, err)
	assert.Len(t, cfg.Columns, 2)

	data, err := cfg.Marshal()
	assert.NoError(t, err)
	again, err := Parse(data)
	assert.NoError(t, err)
	assert.Equal(t, cfg, again)
}
