package reconcile

import (
	"sort"

	"enum-sync/core/enumdef"
)

// BuildPlan computes the difference between an enum definition and the rows
// its table currently holds. It is a pure function: no I/O, and identical
// inputs yield an identical plan regardless of the order existing rows
// arrive in.
//
// Rows the table holds but the definition does not mention are handled per
// the deletion mode: left alone, scheduled for deletion, or reported as a
// PolicyViolationError without producing a plan at all.
func BuildPlan(def *enumdef.Definition, existing []ExistingRow, mode DeletionMode) (*Plan, error) {
	if _, err := ParseDeletionMode(string(mode)); err != nil {
		return nil, err
	}

	plan := &Plan{Table: def.Table()}

	current := make(map[int64]string, len(existing))
	for _, row := range existing {
		current[row.ID] = row.Name
	}

	desired := make(map[int64]struct{}, def.Len())
	for _, row := range def.Rows() {
		desired[row.ID] = struct{}{}

		name, found := current[row.ID]
		switch {
		case !found:
			plan.Insert = append(plan.Insert, row)
		case name != row.Name:
			plan.Update = append(plan.Update, row)
		}
	}

	var orphans []int64
	for _, row := range existing {
		if _, wanted := desired[row.ID]; !wanted {
			orphans = append(orphans, row.ID)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })

	if len(orphans) > 0 {
		switch mode {
		case ModeRemove:
			plan.Delete = orphans
		case ModeError:
			return nil, &PolicyViolationError{Table: def.Table(), Orphans: orphans}
		}
	}

	sort.Slice(plan.Insert, func(i, j int) bool { return plan.Insert[i].ID < plan.Insert[j].ID })
	sort.Slice(plan.Update, func(i, j int) bool { return plan.Update[i].ID < plan.Update[j].ID })

	return plan, nil
}
