package reconcile

import (
	"fmt"

	"enum-sync/core/enumdef"
)

// DeletionMode controls what happens to rows that exist in the database but
// not in the enum definition.
type DeletionMode string

const (
	// ModeIgnore leaves unknown rows in place.
	ModeIgnore DeletionMode = "ignore"
	// ModeRemove deletes unknown rows.
	ModeRemove DeletionMode = "remove"
	// ModeError refuses to touch a table holding unknown rows.
	ModeError DeletionMode = "error"
)

// ParseDeletionMode validates a mode string from config or CLI flags.
func ParseDeletionMode(s string) (DeletionMode, error) {
	switch mode := DeletionMode(s); mode {
	case ModeIgnore, ModeRemove, ModeError:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown deletion mode %q (want ignore, remove or error)", s)
	}
}

// ExistingRow is a row as read from a target table.
type ExistingRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Plan is the computed difference between an enum definition and the rows a
// table currently holds. The three sets are disjoint by ID and each is
// sorted ascending by ID, so identical inputs always produce an identical
// plan. Building one performs no I/O.
type Plan struct {
	// Table is the table the plan applies to.
	Table string `json:"table"`

	// Insert holds definition rows with no matching ID in the table.
	Insert []enumdef.Row `json:"insert"`

	// Update holds definition rows whose ID exists under a different name.
	Update []enumdef.Row `json:"update"`

	// Delete holds IDs present in the table but absent from the definition.
	// Only populated under ModeRemove.
	Delete []int64 `json:"delete"`
}

// Empty reports whether the plan contains no work.
func (p *Plan) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// Counts returns the size of each action set.
func (p *Plan) Counts() (inserts, updates, deletes int) {
	return len(p.Insert), len(p.Update), len(p.Delete)
}

// TableResult records what applying one plan changed.
type TableResult struct {
	Table    string `json:"table"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Deleted  int    `json:"deleted"`
}

// TargetReport rolls up the table results of one connection.
type TargetReport struct {
	// Target is the redacted connection string.
	Target string        `json:"target"`
	Tables []TableResult `json:"tables"`
}

// Totals sums the table results of this target.
func (r *TargetReport) Totals() TableResult {
	var total TableResult
	for _, t := range r.Tables {
		total.Inserted += t.Inserted
		total.Updated += t.Updated
		total.Deleted += t.Deleted
	}
	return total
}

// Report rolls up a whole synchronization run. Targets appear in input
// order; in parallel mode a failed target's entry may be partial.
type Report struct {
	Targets []*TargetReport `json:"targets"`
}

// TablePlans pairs a target with the plans computed for it during a dry run.
type TablePlans struct {
	Target string  `json:"target"`
	Plans  []*Plan `json:"plans"`
}
