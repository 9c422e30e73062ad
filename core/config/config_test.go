package config_test

import (
	"testing"

	"enum-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, "enums", cfg.Database.Name)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "ignore", cfg.Sync.Mode)
		assert.False(t, cfg.Sync.Parallel)
		assert.Equal(t, 0, cfg.Sync.Workers)
		assert.Equal(t, "enums.json", cfg.Manifest.Object)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SYNC_MODE", "remove")
		t.Setenv("SYNC_PARALLEL", "true")
		t.Setenv("SYNC_WORKERS", "4")
		t.Setenv("DATABASE_TARGETS", "sqlite://a.db, sqlite://b.db")

		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "remove", cfg.Sync.Mode)
		assert.True(t, cfg.Sync.Parallel)
		assert.Equal(t, 4, cfg.Sync.Workers)
		assert.Equal(t, []string{"sqlite://a.db", "sqlite://b.db"}, cfg.Database.TargetList())
	})
}
