package sorting

import "github.com/matst80/slask-table/pkg/types"

// Renderer draws the sort indicator of a header cell. Implementations belong to
// the presentation layer, the stores only hand them the current state.
type Renderer interface {
	Icon(columnDefault types.SortDirection, current types.ColumnIdSorting) string
}

// IconRenderer renders unicode arrows.
type IconRenderer struct {
	Unsorted   string
	Ascending  string
	Descending string
}

var DefaultIcons = IconRenderer{
	Unsorted:   "⇅",
	Ascending:  "▲",
	Descending: "▼",
}

func (r IconRenderer) Icon(columnDefault types.SortDirection, current types.ColumnIdSorting) string {
	if columnDefault == types.SortDisabled {
		return ""
	}
	switch current.Direction {
	case types.SortAsc:
		return r.Ascending
	case types.SortDesc:
		return r.Descending
	default:
		return r.Unsorted
	}
}
