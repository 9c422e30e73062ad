package enums_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"enum-sync/core/enumdef"
	"enum-sync/core/reconcile"
	"enum-sync/feature/enums"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const handlerManifest = `{
  "enums": [
    {
      "table": "ticket_state",
      "values": [
        {"id": 1, "name": "OPEN"},
        {"id": 2, "name": "CLOSED"}
      ]
    }
  ]
}`

func setupApp(t *testing.T, targets []string) *fiber.App {
	t.Helper()

	manifestPath := filepath.Join(t.TempDir(), "enums.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(handlerManifest), 0o644))

	svc, err := enums.NewService(nil, "", zap.NewNop(), targets,
		enumdef.Config{Path: manifestPath}, reconcile.Config{})
	require.NoError(t, err)

	app := fiber.New()
	enums.NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleSync(t *testing.T) {
	target := "sqlite://" + filepath.Join(t.TempDir(), "handler.db")
	app := setupApp(t, []string{target})

	resp, err := app.Test(httptest.NewRequest("POST", "/enums/sync", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status enums.RunStatus
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &status))

	require.Len(t, status.Report.Targets, 1)
	assert.Equal(t, 2, status.Report.Targets[0].Totals().Inserted)
}

func TestHandleSync_Failure(t *testing.T) {
	// The target directory does not exist, so the connection cannot open
	target := "sqlite://" + filepath.Join(t.TempDir(), "missing", "handler.db")
	app := setupApp(t, []string{target})

	resp, err := app.Test(httptest.NewRequest("POST", "/enums/sync", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestHandlePlan(t *testing.T) {
	target := "sqlite://" + filepath.Join(t.TempDir(), "handler.db")
	app := setupApp(t, []string{target})

	resp, err := app.Test(httptest.NewRequest("POST", "/enums/plan", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Targets []*reconcile.TablePlans `json:"targets"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &payload))

	require.Len(t, payload.Targets, 1)
	require.Len(t, payload.Targets[0].Plans, 1)
	assert.Len(t, payload.Targets[0].Plans[0].Insert, 2)
}

func TestHandleListDefinitions(t *testing.T) {
	app := setupApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/enums/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Enums []enums.DefinitionSummary `json:"enums"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &payload))

	require.Len(t, payload.Enums, 1)
	assert.Equal(t, "ticket_state", payload.Enums[0].Table)
	assert.Equal(t, 2, payload.Enums[0].Members)
}

func TestHandleStatus(t *testing.T) {
	target := "sqlite://" + filepath.Join(t.TempDir(), "handler.db")
	app := setupApp(t, []string{target})

	// Before any run the endpoint reports that nothing happened yet
	resp, err := app.Test(httptest.NewRequest("GET", "/enums/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "never synchronized")

	// After a sync it returns that run
	resp, err = app.Test(httptest.NewRequest("POST", "/enums/sync", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/enums/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status enums.RunStatus
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Len(t, status.Report.Targets, 1)
}
