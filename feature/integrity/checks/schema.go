package checks

import (
	"fmt"
	"strings"

	"enum-sync/core/database"
	"enum-sync/core/enumdef"

	"gorm.io/gorm"
)

// TableSchema describes how one enum table compares against the expected
// id/name shape.
type TableSchema struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	TypeMismatches []string `json:"type_mismatches,omitempty"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// SchemaReport rolls up the schema check of one target.
type SchemaReport struct {
	Target  string        `json:"target"`
	Matched bool          `json:"matched"`
	Tables  []TableSchema `json:"tables"`
	Errors  []string      `json:"errors,omitempty"`
}

// CheckSchema verifies that every enum table on the connected database has
// the expected shape: an integer id column and a textual name column. A
// missing table is reported but does not abort the check, since the next
// synchronization run would create it.
func CheckSchema(db *gorm.DB, target string, defs []*enumdef.Definition) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Target:  target,
		Matched: true,
	}

	for _, def := range defs {
		table := TableSchema{
			Table:  def.Table(),
			Status: "ok",
		}

		exists, err := database.TableExists(db, def.Table())
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to probe table %s: %v", def.Table(), err))
			report.Matched = false
			continue
		}
		table.Exists = exists

		if !exists {
			table.Status = "missing"
			report.Matched = false
			report.Tables = append(report.Tables, table)
			continue
		}

		cols, err := database.GetTableColumns(db, def.Table())
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", def.Table(), err))
			report.Matched = false
			continue
		}

		byField := make(map[string]database.ColumnInfo, len(cols))
		for _, col := range cols {
			byField[col.Field] = col
		}

		if col, ok := byField["id"]; !ok {
			table.MissingColumns = append(table.MissingColumns, "id")
		} else if !integerFamily(col.Type) {
			table.TypeMismatches = append(table.TypeMismatches, fmt.Sprintf("id: expected an integer type, got %s", col.Type))
		}

		if col, ok := byField["name"]; !ok {
			table.MissingColumns = append(table.MissingColumns, "name")
		} else if !textFamily(col.Type) {
			table.TypeMismatches = append(table.TypeMismatches, fmt.Sprintf("name: expected a text type, got %s", col.Type))
		}

		if len(table.MissingColumns) > 0 || len(table.TypeMismatches) > 0 {
			table.Status = "error"
			report.Matched = false
		}

		report.Tables = append(report.Tables, table)
	}

	return report, nil
}

// integerFamily matches int, integer, bigint, int(11) and friends across
// the supported dialects.
func integerFamily(colType string) bool {
	return strings.Contains(colType, "int")
}

// textFamily matches varchar(n), character varying and text.
func textFamily(colType string) bool {
	return strings.Contains(colType, "char") || strings.Contains(colType, "text")
}
