// Package config loads registry daemon configuration from environment
// variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config is the registryd runtime configuration.
type Config struct {
	// DBPath is the bbolt database file backing the registry store.
	DBPath string `env:"MENAGERIE_DB_PATH" envDefault:"menagerie.db"`
	// GenesisPath points at an optional JSON genesis file replayed into an
	// empty registry on startup.
	GenesisPath string `env:"MENAGERIE_GENESIS_PATH"`
	// SeedHex is the hex-encoded 32-byte epoch seed for the deterministic
	// randomness source. Empty means a fresh random seed.
	SeedHex string `env:"MENAGERIE_SEED"`
	// MaxOwned caps how many creatures one account may hold.
	MaxOwned int `env:"MENAGERIE_MAX_OWNED" envDefault:"100"`
	// MinNameLength and MaxNameLength bound creature names in bytes.
	MinNameLength int `env:"MENAGERIE_MIN_NAME_LENGTH" envDefault:"3"`
	MaxNameLength int `env:"MENAGERIE_MAX_NAME_LENGTH" envDefault:"32"`
	// MinBalance is the balance an account must retain under the
	// keep-alive transfer policy.
	MinBalance uint64 `env:"MENAGERIE_MIN_BALANCE" envDefault:"1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the registryd configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
