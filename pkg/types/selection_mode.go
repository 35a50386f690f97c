package types

import (
	"errors"
	"fmt"
)

var ErrUnknownSelection = errors.New("unknown selection setting")

type SelectionMode uint8

const (
	SelectionNone SelectionMode = iota
	SelectionSingle
	SelectionMulti
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionSingle:
		return "single"
	case SelectionMulti:
		return "multi"
	default:
		return "none"
	}
}

func (m SelectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SelectionMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*m = SelectionNone
	case "single":
		*m = SelectionSingle
	case "multi":
		*m = SelectionMulti
	default:
		return fmt.Errorf("%w: mode %q", ErrUnknownSelection, string(text))
	}
	return nil
}

type SelectionMethod uint8

const (
	SelectByClick SelectionMethod = iota
	SelectByCheckbox
)

func (m SelectionMethod) String() string {
	if m == SelectByCheckbox {
		return "checkbox"
	}
	return "click"
}

func (m SelectionMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *SelectionMethod) UnmarshalText(text []byte) error {
	switch string(text) {
	case "click", "":
		*m = SelectByClick
	case "checkbox":
		*m = SelectByCheckbox
	default:
		return fmt.Errorf("%w: method %q", ErrUnknownSelection, string(text))
	}
	return nil
}
