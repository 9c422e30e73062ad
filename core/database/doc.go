// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that turns
// opaque connection strings into configured connections for the supported
// dialects: MySQL, PostgreSQL and SQLite.
//
// # Connections
//
// Open accepts an opaque connection string and routes it to the right driver
// by its URL scheme (mysql://, postgres://, sqlite://). Connect builds the
// same thing from discrete config fields when no target list is configured.
// Close releases the pool; every acquired connection is expected to pass
// through it, errors or not.
//
// # Schema Inspection
//
// TableExists and GetTableColumns issue plain catalog queries per dialect
// (information_schema, SHOW COLUMNS, PRAGMA table_info). The row reader uses
// the existence probe to treat a missing enum table as an empty one, and the
// integrity checks compare inspected columns against the expected id/name
// shape.
//
// # Usage
//
//	db, err := database.Open("mysql://root@tcp(localhost:3306)/app")
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer database.Close(db)
//
//	exists, err := database.TableExists(db, "order_status")
package database
