package sorting

import "github.com/matst80/slask-table/pkg/types"

// ReducePlan computes the plan that follows a header activation.
//
// Only one column is sorted at a time. Activating the primary column again
// cycles asc, desc, none; activating any other column starts at asc. A
// disabled activation leaves the plan untouched. The activation's own
// direction is only consulted for the disabled check.
func ReducePlan(plan types.SortingPlan, activated types.ColumnIdSorting) types.SortingPlan {
	if activated.Direction == types.SortDisabled {
		return plan
	}
	return types.SortingPlan{{
		ColumnId:  activated.ColumnId,
		Direction: nextDirection(plan, activated.ColumnId),
	}}
}

func nextDirection(plan types.SortingPlan, columnId string) types.SortDirection {
	current, ok := plan.Primary()
	if !ok || current.ColumnId != columnId {
		return types.SortAsc
	}
	switch current.Direction {
	case types.SortAsc:
		return types.SortDesc
	case types.SortDesc:
		return types.SortNone
	default:
		return types.SortAsc
	}
}
