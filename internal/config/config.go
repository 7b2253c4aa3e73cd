// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted by TRIPLEDGER_STORE.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the server settings.
type Config struct {
	Port       int    `env:"TRIPLEDGER_PORT"        envDefault:"8080"`
	Store      string `env:"TRIPLEDGER_STORE"       envDefault:"memory"`
	StaticPath string `env:"TRIPLEDGER_STATIC_PATH"`
	LogLevel   string `env:"LOG_LEVEL"              envDefault:"info"`
	Metrics    bool   `env:"TRIPLEDGER_METRICS"     envDefault:"true"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv fills target from environment variables using its env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
