// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr            string        `env:"GROUPADMIN_ADDR"             envDefault:":8080"`
	Store           string        `env:"GROUPADMIN_STORE"            envDefault:"memory"`
	DBPath          string        `env:"GROUPADMIN_DB_PATH"          envDefault:"./data/groups.db"`
	Seed            bool          `env:"GROUPADMIN_SEED"             envDefault:"true"`
	Latency         bool          `env:"GROUPADMIN_LATENCY"          envDefault:"true"`
	LatencyScale    float64       `env:"GROUPADMIN_LATENCY_SCALE"    envDefault:"1"`
	DefaultManager  string        `env:"GROUPADMIN_DEFAULT_MANAGER"  envDefault:"1"`
	LogFormat       string        `env:"GROUPADMIN_LOG_FORMAT"       envDefault:"text"`
	LogLevel        string        `env:"LOG_LEVEL"                   envDefault:"info"`
	ShutdownTimeout time.Duration `env:"GROUPADMIN_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("GROUPADMIN_STORE must be %q or %q, got %q", StoreMemory, StoreSQLite, c.Store)
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		return fmt.Errorf("GROUPADMIN_DB_PATH is required for the sqlite store")
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("GROUPADMIN_LATENCY_SCALE must not be negative, got %v", c.LatencyScale)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("GROUPADMIN_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
