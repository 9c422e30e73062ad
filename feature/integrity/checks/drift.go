package checks

import (
	"context"

	"enum-sync/core/enumdef"
	"enum-sync/core/reconcile"
)

// TableDrift counts the pending mutations for one table.
type TableDrift struct {
	Table   string `json:"table"`
	Inserts int    `json:"inserts"`
	Updates int    `json:"updates"`
	Orphans int    `json:"orphans"`
}

// DriftReport rolls up the pending work of one target. Clean means every
// table already matches its definition.
type DriftReport struct {
	Target string       `json:"target"`
	Clean  bool         `json:"clean"`
	Tables []TableDrift `json:"tables"`
	Error  string       `json:"error,omitempty"`
}

// CheckDrift computes how far one target has drifted from the definitions
// without mutating it. The synchronizer must be planning in remove mode so
// rows outside the definition surface as orphans here even when the
// configured sync mode would leave them alone.
func CheckDrift(ctx context.Context, sync *reconcile.Synchronizer, dsn string, defs []*enumdef.Definition) (*DriftReport, error) {
	plans, err := sync.PlanTarget(ctx, dsn, defs)
	if err != nil {
		return nil, err
	}

	report := &DriftReport{Target: plans.Target, Clean: true}
	for _, plan := range plans.Plans {
		inserts, updates, orphans := plan.Counts()
		drift := TableDrift{
			Table:   plan.Table,
			Inserts: inserts,
			Updates: updates,
			Orphans: orphans,
		}
		if !plan.Empty() {
			report.Clean = false
		}
		report.Tables = append(report.Tables, drift)
	}

	return report, nil
}
