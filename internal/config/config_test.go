package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "@every 1m", cfg.WatchCron)
	assert.Equal(t, 60, cfg.ReminderWindowMinutes)

	info, err := os.Stat(path)
	require.NoError(t, err, "first run writes the config file")
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_path: /tmp/events.json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/events.json", cfg.DataPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 90, cfg.HorizonDays)
	assert.Equal(t, "date-asc", cfg.DefaultSort)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.DataPath = "/var/lib/cetrack/events.json"
	cfg.ReminderWindowMinutes = 30
	cfg.Timezone = "Asia/Kolkata"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DataPath, loaded.DataPath)
	assert.Equal(t, 30, loaded.ReminderWindowMinutes)
	assert.Equal(t, "Asia/Kolkata", loaded.Timezone)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}
