package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "school.db", cfg.Database.Path)
	assert.Equal(t, "snapshots", cfg.Snapshot.Dir)
	assert.Equal(t, "backups", cfg.Backup.Dir)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
database:
  path: /var/lib/school/state.db
logging:
  level: debug
  format: text
`)
	require.NoError(t, os.WriteFile(path, content, 0o640))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/school/state.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Untouched sections keep their defaults.
	assert.Equal(t, "snapshots", cfg.Snapshot.Dir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: from_file.db\n"), 0o640))

	t.Setenv("SCHOOL_DB_PATH", "from_env.db")
	t.Setenv("SCHOOL_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from_env.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigRejectsInvalidLevel(t *testing.T) {
	t.Setenv("SCHOOL_LOG_LEVEL", "loud")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
