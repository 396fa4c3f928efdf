package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tempus.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stdio", cfg.Transport.Mode)
	assert.False(t, cfg.Auth.Enabled)

	assert.Equal(t, 24*time.Hour, cfg.Tracking.StaleThreshold)
	assert.Equal(t, 30*time.Minute, cfg.Tracking.IdleThreshold)
	assert.Equal(t, 0.8, cfg.Tracking.BudgetWarning)
	assert.Equal(t, 1.0, cfg.Tracking.BudgetExceeded)

	assert.Equal(t, 30, cfg.Forecast.HistoryDays)
	assert.Equal(t, 3, cfg.Forecast.MovingAverageWindow)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TEMPUS_SERVER_PORT", "9090")
	t.Setenv("TEMPUS_DB_PATH", "/tmp/alt.db")
	t.Setenv("TEMPUS_LOG_LEVEL", "debug")
	t.Setenv("TEMPUS_TRANSPORT_MODE", "http")
	t.Setenv("TEMPUS_AUTH_ENABLED", "true")
	t.Setenv("TEMPUS_STALE_THRESHOLD", "48h")
	t.Setenv("TEMPUS_IDLE_THRESHOLD", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/alt.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http", cfg.Transport.Mode)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 48*time.Hour, cfg.Tracking.StaleThreshold)
	assert.Equal(t, 15*time.Minute, cfg.Tracking.IdleThreshold)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TEMPUS_SERVER_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: 8181
transport:
  mode: http
tracking:
  budget_warning: 0.75
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	t.Setenv("TEMPUS_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "http", cfg.Transport.Mode)
	assert.Equal(t, 0.75, cfg.Tracking.BudgetWarning)
	// Untouched sections keep their defaults.
	assert.Equal(t, "tempus.db", cfg.DB.Path)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("TEMPUS_CONFIG_PATH", "/nonexistent/config.yaml")
	_, err := Load()
	assert.Error(t, err)
}
