// Package config provides the YAML-based application configuration,
// including first-run creation with restrictive permissions.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DataPath is where the event collection is persisted.
	DataPath string `yaml:"data_path"`

	// CacheDir holds the ICS feed fetch cache.
	CacheDir string `yaml:"cache_dir"`

	// LogLevel is the minimum log level (debug/info/warn/error).
	LogLevel string `yaml:"log_level"`

	// Timezone is the IANA zone used for rendering dates; empty means
	// the system local zone.
	Timezone string `yaml:"timezone"`

	// ReminderWindowMinutes is how far ahead the watch-mode sweep looks
	// for upcoming events.
	ReminderWindowMinutes int `yaml:"reminder_window_minutes"`

	// WatchCron is the cron spec driving the reminder sweep.
	WatchCron string `yaml:"watch_cron"`

	// HorizonDays bounds recurrence expansion when importing ICS feeds.
	HorizonDays int `yaml:"horizon_days"`

	// DefaultSort is applied by list when no sort flag is given.
	DefaultSort string `yaml:"default_sort"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataPath:              filepath.Join(baseDir(), "events.json"),
		CacheDir:              filepath.Join(baseDir(), "ics-cache"),
		LogLevel:              "info",
		Timezone:              "",
		ReminderWindowMinutes: 60,
		WatchCron:             "@every 1m",
		HorizonDays:           90,
		DefaultSort:           "date-asc",
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cetrack"
	}
	return filepath.Join(home, ".cetrack")
}

// Normalize fills in missing/zero values so partially-filled configs
// from older versions still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.DataPath == "" {
		c.DataPath = def.DataPath
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ReminderWindowMinutes <= 0 {
		c.ReminderWindowMinutes = def.ReminderWindowMinutes
	}
	if c.WatchCron == "" {
		c.WatchCron = def.WatchCron
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = def.HorizonDays
	}
	if c.DefaultSort == "" {
		c.DefaultSort = def.DefaultSort
	}
}

// Load reads configuration from the given YAML path. A missing file is
// first-run: a default config is written there with 0600 perms and
// returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory as needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cetrack-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
