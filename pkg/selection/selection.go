// Package selection keeps track of selected table rows by identity.
//
// Rows are compared through an injected row id function, never by value or
// pointer equality. The pure functions in this file implement the selection
// rules, Store serialises them for concurrent hosts.
package selection

import "slices"

// IdFunc maps a row to its stable identity.
type IdFunc[R any, K comparable] func(R) K

func indexOf[R any, K comparable](selection []R, id K, rowId IdFunc[R, K]) int {
	return slices.IndexFunc(selection, func(r R) bool {
		return rowId(r) == id
	})
}

// Contains reports whether a row with the same id as row is selected.
func Contains[R any, K comparable](selection []R, row R, rowId IdFunc[R, K]) bool {
	return indexOf(selection, rowId(row), rowId) >= 0
}

// ToggleMulti removes row when an entry with its id is selected and appends it
// otherwise. When replace reports that the selected entry is a different
// object with the same id, that entry is refreshed in place instead of removed.
func ToggleMulti[R any, K comparable](selection []R, row R, rowId IdFunc[R, K], same func(a, b R) bool) []R {
	i := indexOf(selection, rowId(row), rowId)
	if i < 0 {
		return append(slices.Clone(selection), row)
	}
	if same != nil && !same(selection[i], row) {
		ret := slices.Clone(selection)
		ret[i] = row
		return ret
	}
	return slices.Delete(slices.Clone(selection), i, i+1)
}

// SelectSingle replaces the selection with row, or clears it when row is
// already the only selected row.
func SelectSingle[R any, K comparable](selection []R, row R, rowId IdFunc[R, K]) []R {
	if len(selection) == 1 && rowId(selection[0]) == rowId(row) {
		return []R{}
	}
	return []R{row}
}

// SyncWithDataset keeps only the selected ids still present in all, replacing
// each entry with the current object from all.
func SyncWithDataset[R any, K comparable](selection []R, all []R, rowId IdFunc[R, K]) []R {
	current := make(map[K]R, len(all))
	for _, r := range all {
		current[rowId(r)] = r
	}
	ret := make([]R, 0, len(selection))
	for _, r := range selection {
		if fresh, ok := current[rowId(r)]; ok {
			ret = append(ret, fresh)
		}
	}
	return ret
}

// Dedupe drops later entries sharing an id with an earlier one.
func Dedupe[R any, K comparable](rows []R, rowId IdFunc[R, K]) []R {
	seen := make(map[K]struct{}, len(rows))
	ret := make([]R, 0, len(rows))
	for _, r := range rows {
		id := rowId(r)
		if _, found := seen[id]; found {
			continue
		}
		seen[id] = struct{}{}
		ret = append(ret, r)
	}
	return ret
}

// Ids returns the ids of rows in order.
func Ids[R any, K comparable](rows []R, rowId IdFunc[R, K]) []K {
	ret := make([]K, len(rows))
	for i, r := range rows {
		ret[i] = rowId(r)
	}
	return ret
}
