// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store driver names. Empty selects a driver automatically.
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverDisabled = "disabled"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
	Seed    SeedConfig    `yaml:"seed"`
	Metrics MetricsConfig `yaml:"metrics"`
	OpenAPI OpenAPIConfig `yaml:"openapi"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StoreConfig configures the document store.
type StoreConfig struct {
	Driver         string        `yaml:"driver"` // "mongo", "sqlite", "memory", "disabled" or "" for auto
	URL            string        `yaml:"url"`
	Database       string        `yaml:"database"`
	Path           string        `yaml:"path"` // sqlite file
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// SeedConfig configures sample-data seeding.
type SeedConfig struct {
	OnStart bool `yaml:"on_start"` // run seeding during bootstrap
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil means enabled
	Path    string `yaml:"path"`    // custom path (default: /metrics)
}

// IsEnabled reports whether the /metrics endpoint should be mounted.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled *bool `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the OpenAPI endpoints should be mounted.
func (o OpenAPIConfig) IsEnabled() bool {
	return o.Enabled == nil || *o.Enabled
}

// ResolveDriver returns the effective store driver. An explicit driver wins;
// otherwise a database URL selects mongo, and with neither the store runs
// disabled so the process can still serve diagnostics.
func (c *Config) ResolveDriver() string {
	if c.Store.Driver != "" {
		return c.Store.Driver
	}
	if c.Store.URL != "" {
		return DriverMongo
	}
	return DriverDisabled
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
// This is useful for Docker deployments where no config file is needed.
//
// Environment variables:
//
//	DATABASE_URL          - MongoDB connection string
//	DATABASE_NAME         - MongoDB database name
//	PORT                  - Server port (default: 8000)
//	CARTX_SERVER_HOST     - Server host (default: 0.0.0.0)
//	CARTX_SERVER_PORT     - Server port, wins over PORT
//	CARTX_STORE_DRIVER    - Store driver: mongo, sqlite, memory, disabled
//	CARTX_SQLITE_PATH     - SQLite file path (default: cartx.db)
//	CARTX_LOG_LEVEL       - Log level: debug, info, warn, error (default: info)
//	CARTX_LOG_FORMAT      - Log format: json or console (default: json)
//	CARTX_SEED_ON_START   - Seed sample products during startup
//	CARTX_METRICS_ENABLED - Mount the Prometheus endpoint (default: true)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment
// variables. A missing file is not an error: the service can run entirely
// from env, degraded to a disabled store when nothing is configured.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// HasEnvConfig returns true if any recognized environment variables are set.
func HasEnvConfig() bool {
	vars := []string{
		"DATABASE_URL",
		"DATABASE_NAME",
		"PORT",
		"CARTX_SERVER_HOST",
		"CARTX_SERVER_PORT",
		"CARTX_STORE_DRIVER",
		"CARTX_SQLITE_PATH",
		"CARTX_LOG_LEVEL",
		"CARTX_LOG_FORMAT",
		"CARTX_SEED_ON_START",
		"CARTX_METRICS_ENABLED",
	}
	for _, v := range vars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// applyEnvOverrides applies environment variables to the config.
// Environment variables always override file-based configuration. The
// original deployment names (DATABASE_URL, DATABASE_NAME, PORT) are applied
// first so the CARTX_* names win when both are set.
func applyEnvOverrides(cfg *Config) {
	// Original deployment names
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Store.URL = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		cfg.Store.Database = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Server configuration
	if v := os.Getenv("CARTX_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("CARTX_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CARTX_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("CARTX_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Store configuration
	if v := os.Getenv("CARTX_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("CARTX_SQLITE_PATH"); v != "" {
		cfg.Store.Path = v
	}

	// Logging configuration
	if v := os.Getenv("CARTX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CARTX_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Seed configuration
	if v := os.Getenv("CARTX_SEED_ON_START"); v != "" {
		cfg.Seed.OnStart = parseBool(v)
	}

	// Metrics configuration
	if v := os.Getenv("CARTX_METRICS_ENABLED"); v != "" {
		enabled := parseBool(v)
		cfg.Metrics.Enabled = &enabled
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "cartx.db"
	}
	if cfg.Store.ConnectTimeout == 0 {
		cfg.Store.ConnectTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	validDrivers := map[string]bool{
		"": true, DriverMongo: true, DriverSQLite: true, DriverMemory: true, DriverDisabled: true,
	}
	if !validDrivers[cfg.Store.Driver] {
		return fmt.Errorf("store.driver must be one of: mongo, sqlite, memory, disabled, got %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == DriverMongo && cfg.Store.URL == "" {
		return fmt.Errorf("store.url is required when store.driver is 'mongo'")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	return nil
}
