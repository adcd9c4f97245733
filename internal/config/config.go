// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

// Package config provides layered configuration for the Vibescope server.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Seed     SeedConfig     `koanf:"seed"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8480)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: development or production
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path (default: /data/vibescope.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory cap (default: 1GB)
//   - DUCKDB_THREADS: Worker threads, 0 = runtime.NumCPU()
//   - SEED_MOCK_DATA: Populate synthetic reports on startup when the store is empty
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SeedMockData           bool   `koanf:"seed_mock_data"`
}

// APIConfig holds read-side API behavior.
//
// Environment Variables:
//   - API_CACHE_TTL: View response cache TTL (default: 30s)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP rate limit
//   - CORS_ORIGINS: Comma-separated allowed origins
type APIConfig struct {
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// SeedConfig controls the synthetic report generator. Days of history,
// volume per day, and the PRNG seed for reproducible datasets.
//
// Environment Variables:
//   - SEED_DAYS, SEED_SIGNALS_PER_DAY, SEED_FEEDBACK_PER_DAY, SEED_VALUE
//   - SEED_RATE_PER_SEC: Insert pacing, 0 disables pacing
type SeedConfig struct {
	Days           int     `koanf:"days"`
	SignalsPerDay  int     `koanf:"signals_per_day"`
	FeedbackPerDay int     `koanf:"feedback_per_day"`
	Seed           int64   `koanf:"value"`
	RatePerSec     float64 `koanf:"rate_per_sec"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty (use :memory: for an in-memory store)")
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("api.cache_ttl must not be negative, got %v", c.API.CacheTTL)
	}
	if c.API.RateLimitReqs < 0 {
		return fmt.Errorf("api.rate_limit_reqs must not be negative, got %d", c.API.RateLimitReqs)
	}
	if c.Seed.Days < 0 || c.Seed.SignalsPerDay < 0 || c.Seed.FeedbackPerDay < 0 {
		return fmt.Errorf("seed volumes must not be negative")
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
