// ABOUTME: betterself configuration: storage backend, data directory, rollover schedule.
// ABOUTME: Also the factory that turns the config into an opened kv.Backend.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/betterself/internal/kv"
)

// Backend names.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// DefaultRolloverSchedule is the cron schedule the MCP server uses to check for a new day.
const DefaultRolloverSchedule = "@every 1m"

// Config stores betterself configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "charm" or "memory". Badger holds an exclusive directory lock, so only
	// sqlite lets the CLI run while `betterself mcp` has the store open.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Badger keeps its files in DataDir/badger, SQLite uses DataDir/betterself.db.
	// Supports ~ expansion. Defaults to ~/.local/share/betterself.
	DataDir string `json:"data_dir,omitempty"`

	// RolloverSchedule is a robfig/cron schedule. Defaults to "@every 1m".
	RolloverSchedule string `json:"rollover_schedule,omitempty"`

	// Sync enables Charm auto-sync after every write (charm backend only).
	Sync bool `json:"sync,omitempty"`

	// CharmHost overrides the Charm server (charm backend only).
	CharmHost string `json:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetRolloverSchedule returns the rollover cron schedule.
func (c *Config) GetRolloverSchedule() string {
	if c.RolloverSchedule == "" {
		return DefaultRolloverSchedule
	}
	return c.RolloverSchedule
}

// DefaultDataDir returns $XDG_DATA_HOME/betterself.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "betterself")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenBackend opens the configured storage backend.
func (c *Config) OpenBackend() (kv.Backend, error) {
	dataDir := c.GetDataDir()

	switch c.GetBackend() {
	case BackendBadger:
		return kv.OpenBadger(kv.BadgerConfig{Path: filepath.Join(dataDir, "badger")})
	case BackendSQLite:
		return kv.OpenSQLite(filepath.Join(dataDir, "betterself.db"))
	case BackendCharm:
		return kv.OpenCharm(kv.CharmConfig{Host: c.CharmHost, AutoSync: c.Sync})
	case BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "betterself", "config.json")
}

// Load reads config from disk. A missing file yields defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
