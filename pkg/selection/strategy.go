package selection

import (
	"math"

	"github.com/matst80/slask-table/pkg/types"
)

// CheckboxColumnId is the id of the column injected by StrategyByCheckbox.
const CheckboxColumnId = "__selection"

type StrategyKind uint8

const (
	StrategyNone StrategyKind = iota
	StrategyByClick
	StrategyByCheckbox
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyByClick:
		return "click"
	case StrategyByCheckbox:
		return "checkbox"
	default:
		return "none"
	}
}

// Strategy routes row interactions to a Store according to the configured
// selection mode and method.
type Strategy[R any, K comparable] struct {
	kind  StrategyKind
	mode  types.SelectionMode
	store *Store[R, K]
}

func NewStrategy[R any, K comparable](mode types.SelectionMode, method types.SelectionMethod, store *Store[R, K]) Strategy[R, K] {
	kind := StrategyNone
	if mode != types.SelectionNone && store != nil {
		switch method {
		case types.SelectByCheckbox:
			kind = StrategyByCheckbox
		default:
			kind = StrategyByClick
		}
	}
	return Strategy[R, K]{kind: kind, mode: mode, store: store}
}

func (s Strategy[R, K]) Kind() StrategyKind {
	return s.kind
}

func (s Strategy[R, K]) Mode() types.SelectionMode {
	return s.mode
}

func (s Strategy[R, K]) toggle(row R) {
	if s.mode == types.SelectionMulti {
		s.store.ToggleMulti(row)
	} else {
		s.store.SelectSingle(row)
	}
}

// RowClicked handles a click on the row body. It reports whether the click
// changed routing to the store.
func (s Strategy[R, K]) RowClicked(row R) bool {
	if s.kind != StrategyByClick {
		return false
	}
	s.toggle(row)
	return true
}

// CheckboxToggled handles the row checkbox.
func (s Strategy[R, K]) CheckboxToggled(row R) bool {
	if s.kind != StrategyByCheckbox {
		return false
	}
	s.toggle(row)
	return true
}

// HasHeaderCheckbox reports whether a select-all checkbox is rendered.
func (s Strategy[R, K]) HasHeaderCheckbox() bool {
	return s.kind == StrategyByCheckbox && s.mode == types.SelectionMulti
}

// HeaderCheckboxToggled selects every row in all, or clears the selection.
func (s Strategy[R, K]) HeaderCheckboxToggled(all []R, checked bool) bool {
	if !s.HasHeaderCheckbox() {
		return false
	}
	if checked {
		s.store.SelectAll(all)
	} else {
		s.store.Clear()
	}
	return true
}

// HeaderChecked is the state of the select-all checkbox for the dataset all.
func (s Strategy[R, K]) HeaderChecked(all []R) bool {
	if !s.HasHeaderCheckbox() || len(all) == 0 {
		return false
	}
	for _, r := range all {
		if !s.store.IsSelected(r) {
			return false
		}
	}
	return true
}

// Columns returns set with the checkbox column prepended when the strategy
// needs one.
func (s Strategy[R, K]) Columns(set types.ColumnSet[R]) (types.ColumnSet[R], error) {
	if s.kind != StrategyByCheckbox {
		return set, nil
	}
	store := s.store
	position := set.MinPosition()
	if position > math.MinInt {
		position--
	}
	return set.With(types.Column[R]{
		Id:                   CheckboxColumnId,
		Position:             position,
		SortDirectionDefault: types.SortDisabled,
		MinWidth:             3,
		MaxWidth:             3,
		Extractor: func(row R) string {
			if store.IsSelected(row) {
				return "[x]"
			}
			return "[ ]"
		},
	})
}
