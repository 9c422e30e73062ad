package reconcile

import (
	"context"
	"errors"
	"fmt"

	"enum-sync/core/database"
	"enum-sync/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplyPlan makes a table match its plan. The table is created first when
// absent (idempotent DDL, never destructive), then the mutations run inside
// one transaction in a fixed order: deletes, updates, inserts. Deleting
// before inserting matters because a plan may retire an ID and reissue it
// to a new row in the same pass.
//
// An empty plan issues no DML; only the create-if-absent statement runs.
func ApplyPlan(ctx context.Context, db *gorm.DB, plan *Plan, sink logger.Sink) (TableResult, error) {
	result := TableResult{Table: plan.Table}

	if err := db.WithContext(ctx).Exec(createTableSQL(db, plan.Table)).Error; err != nil {
		return result, &DataAccessError{Op: "create", Table: plan.Table, Err: err}
	}

	if plan.Empty() {
		sink.Record("table already in sync", zap.String("table", plan.Table))
		return result, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(plan.Delete) > 0 {
			if err := tx.Table(plan.Table).Where("id IN ?", plan.Delete).Delete(nil).Error; err != nil {
				return &DataAccessError{Op: "delete", Table: plan.Table, Err: err}
			}
		}

		for _, row := range plan.Update {
			if err := tx.Table(plan.Table).Where("id = ?", row.ID).Update("name", row.Name).Error; err != nil {
				return &DataAccessError{Op: "update", Table: plan.Table, Err: err}
			}
		}

		if len(plan.Insert) > 0 {
			records := make([]map[string]any, 0, len(plan.Insert))
			for _, row := range plan.Insert {
				records = append(records, map[string]any{"id": row.ID, "name": row.Name})
			}
			if err := tx.Table(plan.Table).Create(records).Error; err != nil {
				return &DataAccessError{Op: "insert", Table: plan.Table, Err: err}
			}
		}

		return nil
	})
	if err != nil {
		var dae *DataAccessError
		if !errors.As(err, &dae) {
			err = &DataAccessError{Op: "apply", Table: plan.Table, Err: err}
		}
		return result, err
	}

	// Counts come from the plan rather than RowsAffected; MySQL reports
	// zero affected rows for value-identical updates
	result.Inserted = len(plan.Insert)
	result.Updated = len(plan.Update)
	result.Deleted = len(plan.Delete)

	sink.Record("table synchronized",
		zap.String("table", result.Table),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)

	return result, nil
}

// createTableSQL renders the minimal enum table shape for the connected
// dialect. Existing tables, including ones carrying extra columns, pass
// through untouched thanks to IF NOT EXISTS.
func createTableSQL(db *gorm.DB, table string) string {
	quoted := database.QuoteIdent(db, table)

	switch db.Dialector.Name() {
	case "mysql":
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (`id` BIGINT NOT NULL PRIMARY KEY, `name` VARCHAR(255) NOT NULL)", quoted)
	case "postgres":
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id BIGINT PRIMARY KEY, name TEXT NOT NULL)`, quoted)
	default:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`, quoted)
	}
}
