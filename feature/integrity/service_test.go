package integrity

import (
	"context"
	"path/filepath"
	"testing"

	"enum-sync/core/database"
	"enum-sync/core/enumdef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSource hands the service a fixed set of definitions.
type stubSource struct {
	defs []*enumdef.Definition
	err  error
}

func (s *stubSource) Definitions(ctx context.Context) ([]*enumdef.Definition, error) {
	return s.defs, s.err
}

func orderStatusSource(t *testing.T) *stubSource {
	t.Helper()
	def, err := enumdef.New("order_status", []enumdef.Row{
		{ID: 1, Name: "PLACED"},
		{ID: 2, Name: "SHIPPED"},
	})
	require.NoError(t, err)
	return &stubSource{defs: []*enumdef.Definition{def}}
}

// syncedTarget creates a sqlite target whose table matches the definition.
func syncedTarget(t *testing.T) string {
	t.Helper()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "target.db")
	db, err := database.Open(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, db.Exec("CREATE TABLE order_status (id INTEGER PRIMARY KEY, name TEXT NOT NULL)").Error)
	require.NoError(t, db.Exec("INSERT INTO order_status (id, name) VALUES (1, 'PLACED'), (2, 'SHIPPED')").Error)
	return dsn
}

func TestService_CheckSchema(t *testing.T) {
	good := syncedTarget(t)
	empty := "sqlite://" + filepath.Join(t.TempDir(), "empty.db")
	unreachable := "sqlite://" + filepath.Join(t.TempDir(), "missing", "x.db")

	svc := NewService(orderStatusSource(t), []string{good, empty, unreachable}, zap.NewNop())

	reports, err := svc.CheckSchema(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.True(t, reports[0].Matched)
	require.Len(t, reports[0].Tables, 1)
	assert.Equal(t, "ok", reports[0].Tables[0].Status)

	// The empty target has no table yet
	assert.False(t, reports[1].Matched)
	require.Len(t, reports[1].Tables, 1)
	assert.Equal(t, "missing", reports[1].Tables[0].Status)

	// The unreachable target is reported, not fatal
	assert.False(t, reports[2].Matched)
	assert.NotEmpty(t, reports[2].Errors)
}

func TestService_CheckDrift(t *testing.T) {
	synced := syncedTarget(t)
	fresh := "sqlite://" + filepath.Join(t.TempDir(), "fresh.db")

	svc := NewService(orderStatusSource(t), []string{synced, fresh}, zap.NewNop())

	reports, err := svc.CheckDrift(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Clean)
	assert.False(t, reports[1].Clean)
	require.Len(t, reports[1].Tables, 1)
	assert.Equal(t, 2, reports[1].Tables[0].Inserts)
}

func TestService_CheckDrift_UnreachableTarget(t *testing.T) {
	unreachable := "sqlite://" + filepath.Join(t.TempDir(), "missing", "x.db")

	svc := NewService(orderStatusSource(t), []string{unreachable}, zap.NewNop())

	reports, err := svc.CheckDrift(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Clean)
	assert.NotEmpty(t, reports[0].Error)
}

func TestService_SourceFailure(t *testing.T) {
	svc := NewService(&stubSource{err: assert.AnError}, nil, zap.NewNop())

	_, err := svc.CheckSchema(context.Background())
	assert.Error(t, err)

	_, err = svc.CheckDrift(context.Background())
	assert.Error(t, err)
}
