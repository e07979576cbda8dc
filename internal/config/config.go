//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-olist.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Supported storage drivers.
var Drivers = []string{"postgres", "sqlite", "sqlserver"}

// Config holds all configuration for pgedge-olist.
type Config struct {
	// Driver selects the storage backend (postgres, sqlite, sqlserver).
	Driver string `mapstructure:"driver"`

	// Connection is the driver-specific connection string.
	Connection string `mapstructure:"connection"`

	// DataDir is the directory holding the Olist CSV snapshot.
	DataDir string `mapstructure:"data_dir"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// LoadConfig holds configuration for bulk loading.
type LoadConfig struct {
	// BatchSize is the number of rows committed per transaction.
	BatchSize int `mapstructure:"batch_size"`

	// Phase restricts loading to a single phase (1-4). 0 loads all phases.
	Phase int `mapstructure:"phase"`
}

// SampleConfig holds configuration for synthetic snapshot generation.
type SampleConfig struct {
	// Orders is the number of orders to generate; other tables scale from it.
	Orders int `mapstructure:"orders"`

	// Seed makes generation reproducible. 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Driver:   "postgres",
		DataDir:  "data",
		LogLevel: "info",
		Load: LoadConfig{
			BatchSize: 5000,
			Phase:     0,
		},
		Sample: SampleConfig{
			Orders: 1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-olist.yaml
// 3. ~/.config/pgedge-olist/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-olist")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-olist"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if !validDriver(c.Driver) {
		return fmt.Errorf("driver must be one of %v, got %q", Drivers, c.Driver)
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required for load")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	if c.Load.Phase < 0 || c.Load.Phase > 4 {
		return fmt.Errorf("phase must be between 1 and 4 (0 = all phases)")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required for sample")
	}
	if c.Sample.Orders < 1 {
		return fmt.Errorf("orders must be at least 1")
	}
	return nil
}

func validDriver(name string) bool {
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}
