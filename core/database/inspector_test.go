package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// Create a test table
	// SQLite specific types: INTEGER, TEXT.
	err = db.Exec("CREATE TABLE order_status (id INTEGER PRIMARY KEY, name TEXT, note TEXT)").Error
	assert.NoError(t, err)

	// Test GetTableColumns
	columns, err := GetTableColumns(db, "order_status")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Map columns to map for easy assertion
	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.Equal(t, "text", colMap["note"].Type)

	// Test non-existent table
	// PRAGMA table_info returns an empty result for a non-existent table,
	// implying no error but empty columns
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestTableExists(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE payment_kind (id INTEGER PRIMARY KEY, name TEXT)").Error
	assert.NoError(t, err)

	exists, err := TableExists(db, "payment_kind")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = TableExists(db, "missing_table")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestQuoteIdent(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)

	assert.Equal(t, `"order_status"`, QuoteIdent(db, "order_status"))
}
