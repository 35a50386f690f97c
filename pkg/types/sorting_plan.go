package types

import (
	"errors"
	"fmt"
)

var ErrUnknownSortDirection = errors.New("unknown sort direction")

// SortDirection is the sort state of a single column.
type SortDirection uint8

const (
	// SortDisabled forbids sorting on the column.
	SortDisabled SortDirection = iota
	// SortNone is a sortable column that is currently unsorted.
	SortNone
	SortAsc
	SortDesc
)

// Sorted is true for SortAsc and SortDesc.
func (d SortDirection) Sorted() bool {
	return d == SortAsc || d == SortDesc
}

func (d SortDirection) String() string {
	switch d {
	case SortDisabled:
		return "disabled"
	case SortNone:
		return "none"
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return fmt.Sprintf("SortDirection(%d)", uint8(d))
	}
}

func (d SortDirection) MarshalText() ([]byte, error) {
	if d > SortDesc {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSortDirection, uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *SortDirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "disabled":
		*d = SortDisabled
	case "none", "":
		*d = SortNone
	case "asc", "ASC":
		*d = SortAsc
	case "desc", "DESC":
		*d = SortDesc
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortDirection, string(text))
	}
	return nil
}

// ColumnIdSorting pairs a column id with a direction. An empty ColumnId means
// no column is bound.
type ColumnIdSorting struct {
	ColumnId  string        `json:"columnId,omitempty"`
	Direction SortDirection `json:"direction"`
}

// NoSorting is the sentinel used for columns that are not part of a plan.
var NoSorting = ColumnIdSorting{Direction: SortNone}

func (c ColumnIdSorting) IsBound() bool {
	return c.ColumnId != ""
}

// SortingPlan is an ordered list of sort keys, the first entry is the primary key.
type SortingPlan []ColumnIdSorting

// Primary returns the first entry of the plan.
func (p SortingPlan) Primary() (ColumnIdSorting, bool) {
	if len(p) == 0 {
		return NoSorting, false
	}
	return p[0], true
}

// Lookup returns the plan entry for columnId, or NoSorting.
func (p SortingPlan) Lookup(columnId string) (ColumnIdSorting, bool) {
	for _, s := range p {
		if s.ColumnId == columnId {
			return s, true
		}
	}
	return NoSorting, false
}

func (p SortingPlan) Equal(other SortingPlan) bool {
	if len(p) != len(other) {
		return false
	}
	for i, s := range p {
		if s != other[i] {
			return false
		}
	}
	return true
}

func (p SortingPlan) Clone() SortingPlan {
	if p == nil {
		return SortingPlan{}
	}
	ret := make(SortingPlan, len(p))
	copy(ret, p)
	return ret
}
