package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/matst80/slask-table/pkg/config"
	"github.com/matst80/slask-table/pkg/demo"
	"github.com/matst80/slask-table/pkg/sorting"
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	items    string
	config   string
	mode     string
	method   string
	sort     []string
	click    []string
	check    []string
	checkAll bool
	delete   []string
}

var renderOpts = renderOptions{}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Apply interactions and print the table",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := buildTable(renderOpts)
		if err != nil {
			return err
		}
		if err := applyInteractions(tbl, renderOpts); err != nil {
			return err
		}
		renderTable(cmd.OutOrStdout(), tbl, sorting.DefaultIcons)
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderOpts.items, "items", "", "JSON file with items, defaults to the demo catalog")
	f.StringVar(&renderOpts.config, "config", "", "table.yaml with column overrides")
	f.StringVar(&renderOpts.mode, "mode", "", "selection mode (none, single, multi), overrides the config")
	f.StringVar(&renderOpts.method, "method", "", "selection method (click, checkbox), overrides the config")
	f.StringArrayVar(&renderOpts.sort, "sort", nil, "click the header of a column, repeatable")
	f.StringArrayVar(&renderOpts.click, "click", nil, "click the row with id, repeatable")
	f.StringArrayVar(&renderOpts.check, "check", nil, "toggle the checkbox of the row with id, repeatable")
	f.BoolVar(&renderOpts.checkAll, "check-all", false, "check the header checkbox")
	f.StringArrayVar(&renderOpts.delete, "delete", nil, "remove the row with id before rendering, repeatable")
}

func buildTable(opts renderOptions) (*table.Table[demo.Item, string], error) {
	items := demo.Catalog()
	if opts.items != "" {
		loaded, err := demo.LoadItems(opts.items)
		if err != nil {
			return nil, err
		}
		items = loaded
	}
	cfg, err := config.LoadOptional(opts.config)
	if err != nil {
		return nil, err
	}
	if opts.mode != "" {
		if err := cfg.SelectionMode.UnmarshalText([]byte(opts.mode)); err != nil {
			return nil, err
		}
	}
	if opts.method != "" {
		if err := cfg.SelectionMethod.UnmarshalText([]byte(opts.method)); err != nil {
			return nil, err
		}
	}
	base, err := types.NewColumnSet(demo.Columns()...)
	if err != nil {
		return nil, err
	}
	set, err := config.Apply(cfg, base)
	if err != nil {
		return nil, err
	}
	return table.New(table.Options[demo.Item, string]{
		Columns:         set.Columns(),
		RowId:           demo.ItemId,
		SameRow:         demo.SameItem,
		SelectionMode:   cfg.SelectionMode,
		SelectionMethod: cfg.SelectionMethod,
		Rows:            items,
	})
}

func applyInteractions(tbl *table.Table[demo.Item, string], opts renderOptions) error {
	if len(opts.delete) > 0 {
		remove := make(map[string]bool, len(opts.delete))
		for _, id := range opts.delete {
			remove[id] = true
		}
		kept := []demo.Item{}
		for _, item := range tbl.Rows() {
			if !remove[item.Id] {
				kept = append(kept, item)
			}
		}
		tbl.SetRows(kept)
	}
	for _, id := range opts.sort {
		if err := tbl.ToggleSort(id); err != nil {
			return err
		}
	}
	for _, id := range opts.click {
		if _, err := tbl.ClickRow(id); err != nil {
			return err
		}
	}
	for _, id := range opts.check {
		if _, err := tbl.ToggleCheckbox(id); err != nil {
			return err
		}
	}
	if opts.checkAll {
		tbl.ToggleAll(true)
	}
	return nil
}

var (
	headerColor   = color.New(color.Bold)
	sortedColor   = color.New(color.FgCyan, color.Bold)
	selectedColor = color.New(color.FgGreen)
	disabledColor = color.New(color.Faint)
)

func fit(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n > width {
		if width <= 1 {
			return string([]rune(value)[:width])
		}
		return string([]rune(value)[:width-1]) + "…"
	}
	return value + strings.Repeat(" ", width-n)
}

func columnWidths(headers []table.Header[demo.Item], views []table.RowView[demo.Item], icons sorting.Renderer) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		w := utf8.RuneCountInString(h.Column.Title)
		if icon := icons.Icon(h.Column.SortDirectionDefault, h.Sorting); icon != "" {
			w += 1 + utf8.RuneCountInString(icon)
		}
		for _, v := range views {
			w = max(w, utf8.RuneCountInString(h.Column.Value(v.Row)))
		}
		w = max(w, h.Column.MinWidth)
		if h.Column.MaxWidth > 0 {
			w = min(w, h.Column.MaxWidth)
		}
		widths[i] = w
	}
	return widths
}

func renderTable(w io.Writer, tbl *table.Table[demo.Item, string], icons sorting.Renderer) {
	headers := tbl.Headers()
	views := tbl.RowViews()
	widths := columnWidths(headers, views, icons)

	cells := make([]string, len(headers))
	for i, h := range headers {
		title := h.Column.Title
		if icon := icons.Icon(h.Column.SortDirectionDefault, h.Sorting); icon != "" {
			title += " " + icon
		}
		c := headerColor
		if h.Sorting.Direction.Sorted() {
			c = sortedColor
		}
		cells[i] = c.Sprint(fit(title, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(cells, " | "))

	for _, v := range views {
		for i, cell := range v.Cells {
			text := fit(cell.Column.Value(v.Row), widths[i])
			switch {
			case v.Selected:
				text = selectedColor.Sprint(text)
			case cell.Data.SortDirection == types.SortDisabled:
				text = disabledColor.Sprint(text)
			}
			cells[i] = text
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
	}

	if tbl.Strategy().Mode() != types.SelectionNone {
		fmt.Fprintf(w, "selected: %s\n", strings.Join(tbl.SelectedIds(), ", "))
	}
}
