package reconcile

import (
	"context"
	"fmt"

	"enum-sync/core/database"
	"enum-sync/core/utils"

	"gorm.io/gorm"
)

// ReadTable loads the current (id, name) rows of an enum table, ordered by
// id. A missing table is not an error: it returns no rows and leaves
// creation to the executor, which covers the first sync against a fresh
// database. Anything else, including a schema the scan cannot digest, comes
// back as a DataAccessError.
func ReadTable(ctx context.Context, db *gorm.DB, table string) ([]ExistingRow, error) {
	exists, err := database.TableExists(db, table)
	if err != nil {
		return nil, &DataAccessError{Op: "probe", Table: table, Err: err}
	}
	if !exists {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY id", database.QuoteIdent(db, table))

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, &DataAccessError{Op: "read", Table: table, Err: err}
	}
	defer rows.Close()

	var out []ExistingRow
	for rows.Next() {
		// Scan into any and normalize; integer width and text type vary
		// by driver
		var id, name any
		if err := rows.Scan(&id, &name); err != nil {
			return nil, &DataAccessError{Op: "scan", Table: table, Err: err}
		}
		out = append(out, ExistingRow{ID: utils.ToInt64(id), Name: utils.ToString(name)})
	}
	if err := rows.Err(); err != nil {
		return nil, &DataAccessError{Op: "read", Table: table, Err: err}
	}

	return out, nil
}
