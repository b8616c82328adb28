package config

import (
	"fmt"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	ScopeGlobal = "global"
	ScopeUser   = "user"
)

// Config holds runtime settings for the coursekeeper CLI.
//
// Fields:
//   - DataPath: SQLite file backing the persistent store.
//   - StorageDriver: "sqlite" or "memory".
//   - BusyTimeout: how long SQLite waits on a locked database.
//   - CatalogPath: optional YAML/JSON course catalog; empty means built-in.
//   - CompletionScope: "global" shares completions between accounts, "user"
//     keeps one set per username.
//   - HashPasswords: store argon2id records instead of plaintext.
//   - LogLevel / LogBackend: logging threshold and implementation.
type Config struct {
	DataPath        string
	StorageDriver   string
	BusyTimeout     time.Duration
	CatalogPath     string
	CompletionScope string
	HashPasswords   bool
	LogLevel        string
	LogBackend      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataPath = "coursekeeper.db"
	c.StorageDriver = DriverSQLite
	c.BusyTimeout = 5 * time.Second
	c.CatalogPath = ""
	c.CompletionScope = ScopeGlobal
	c.HashPasswords = false
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	switch c.CompletionScope {
	case ScopeGlobal, ScopeUser:
	default:
		return fmt.Errorf("unknown completion scope %q", c.CompletionScope)
	}
	switch c.LogBackend {
	case "slog", "zap":
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	if c.StorageDriver == DriverSQLite && c.DataPath == "" {
		return fmt.Errorf("data path is required for the sqlite driver")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
