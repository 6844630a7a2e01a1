package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "taskboard.events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, time.Hour, cfg.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	yaml := `
app:
  port: 9090
  timezone: Europe/Berlin
database:
  driver: sqlite
  dsn: ${TASKBOARD_TEST_DSN}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("TASKBOARD_TEST_DSN", "file:test.db")
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	// defaults still apply to keys the file leaves out
	assert.Equal(t, 60, cfg.Auth.AccessTTLMin)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_DATABASE_DSN", "postgres://u:p@db:5432/taskboard")
	t.Setenv("APP_AUTH_ACCESSTTLMIN", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/taskboard", cfg.Database.DSN)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL())
}
