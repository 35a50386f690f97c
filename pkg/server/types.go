package server

import (
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
)

type HeaderResponse struct {
	Id       string                `json:"id"`
	Title    string                `json:"title"`
	MinWidth int                   `json:"minWidth,omitempty"`
	MaxWidth int                   `json:"maxWidth,omitempty"`
	Sortable bool                  `json:"sortable"`
	Sorting  types.ColumnIdSorting `json:"sorting"`
	Icon     string                `json:"icon,omitempty"`
}

type HeadersResponse struct {
	Columns        []HeaderResponse `json:"columns"`
	HeaderCheckbox bool             `json:"headerCheckbox"`
	AllChecked     bool             `json:"allChecked"`
}

type CellResponse struct {
	Column        string              `json:"column"`
	Value         string              `json:"value"`
	SortDirection types.SortDirection `json:"sortDirection"`
}

type RowResponse struct {
	Id       string         `json:"id"`
	Index    int            `json:"index"`
	Selected bool           `json:"selected"`
	Cells    []CellResponse `json:"cells"`
}

type RowsResponse struct {
	State table.TableState `json:"state"`
	Rows  []RowResponse    `json:"rows"`
}

type SelectionResponse struct {
	Handled  bool     `json:"handled"`
	Selected []string `json:"selected"`
}
