package checks

import (
	"context"
	"path/filepath"
	"testing"

	"enum-sync/core/database"
	"enum-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedTarget creates an on-disk sqlite target holding the given rows and
// returns its connection string.
func seedTarget(t *testing.T, rows map[int64]string) string {
	t.Helper()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "drift.db")
	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	err = db.Exec("CREATE TABLE order_status (id INTEGER PRIMARY KEY, name TEXT NOT NULL)").Error
	require.NoError(t, err)
	for id, name := range rows {
		require.NoError(t, db.Exec("INSERT INTO order_status (id, name) VALUES (?, ?)", id, name).Error)
	}
	return dsn
}

func removePlanner() *reconcile.Synchronizer {
	return reconcile.NewSynchronizer(reconcile.Options{Mode: reconcile.ModeRemove})
}

func TestCheckDrift_CountsPendingWork(t *testing.T) {
	dsn := seedTarget(t, map[int64]string{1: "PLACED", 9: "ORPHAN"})

	report, err := CheckDrift(context.Background(), removePlanner(), dsn, orderStatusDefs(t))
	require.NoError(t, err)

	assert.False(t, report.Clean)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, TableDrift{Table: "order_status", Inserts: 1, Updates: 0, Orphans: 1}, report.Tables[0])
}

func TestCheckDrift_CleanTarget(t *testing.T) {
	dsn := seedTarget(t, map[int64]string{1: "PLACED", 2: "SHIPPED"})

	report, err := CheckDrift(context.Background(), removePlanner(), dsn, orderStatusDefs(t))
	require.NoError(t, err)

	assert.True(t, report.Clean)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, TableDrift{Table: "order_status"}, report.Tables[0])
}

func TestCheckDrift_MissingTableIsAllPending(t *testing.T) {
	// A target without the table drifts by the full definition
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "fresh.db")

	report, err := CheckDrift(context.Background(), removePlanner(), dsn, orderStatusDefs(t))
	require.NoError(t, err)

	assert.False(t, report.Clean)
	require.Len(t, report.Tables, 1)
	assert.Equal(t, 2, report.Tables[0].Inserts)
	assert.Zero(t, report.Tables[0].Orphans)
}

func TestCheckDrift_UnreachableTarget(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "missing", "drift.db")

	_, err := CheckDrift(context.Background(), removePlanner(), dsn, orderStatusDefs(t))
	assert.Error(t, err)
}
