package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/matst80/slask-table/pkg/sorting"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func render(t *testing.T, opts renderOptions) []string {
	t.Helper()
	tbl, err := buildTable(opts)
	if err != nil {
		t.Fatalf("buildTable() error = %v", err)
	}
	if err := applyInteractions(tbl, opts); err != nil {
		t.Fatalf("applyInteractions() error = %v", err)
	}
	buf := bytes.Buffer{}
	renderTable(&buf, tbl, sorting.DefaultIcons)
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", fit("ab", 4))
	assert.Equal(t, "abc…", fit("abcdef", 4))
	assert.Equal(t, "▲", fit("▲", 1))
}

func TestRenderSortedByPrice(t *testing.T) {
	lines := render(t, renderOptions{sort: []string{"price"}})
	if !assert.Len(t, lines, 7) {
		return
	}
	assert.Contains(t, lines[0], "Price ▲")
	assert.Contains(t, lines[0], "Title ⇅")
	assert.NotContains(t, lines[0], "Sku ⇅")
	assert.True(t, strings.HasPrefix(lines[1], "Milk jug"))
	assert.True(t, strings.HasPrefix(lines[6], "Espresso machine"))
}

func TestRenderCheckboxSelection(t *testing.T) {
	lines := render(t, renderOptions{
		mode:   "multi",
		method: "checkbox",
		check:  []string{"1003", "1001"},
		delete: []string{"1006"},
	})
	if !assert.Len(t, lines, 7) {
		return
	}
	assert.True(t, strings.HasPrefix(lines[1], "[x]"))
	assert.True(t, strings.HasPrefix(lines[2], "[ ]"))
	assert.Equal(t, "selected: 1003, 1001", lines[6])
}

func TestRenderWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("selectionMode: single\ncolumns:\n  - id: brand\n    hidden: true\n"), 0o644))

	lines := render(t, renderOptions{config: path, click: []string{"1002"}})
	assert.NotContains(t, lines[0], "Brand")
	assert.Equal(t, "selected: 1002", lines[len(lines)-1])
}

func TestRenderErrors(t *testing.T) {
	_, err := buildTable(renderOptions{mode: "some"})
	assert.Error(t, err)

	tbl, err := buildTable(renderOptions{})
	assert.NoError(t, err)
	assert.Error(t, applyInteractions(tbl, renderOptions{sort: []string{"missing"}}))
}
