// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 8480 {
		t.Errorf("server.port = %d, want 8480", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/vibescope.duckdb" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.API.CacheTTL != 30*time.Second {
		t.Errorf("api.cache_ttl = %v, want 30s", cfg.API.CacheTTL)
	}
	if cfg.Seed.Days != 60 {
		t.Errorf("seed.days = %d, want 60", cfg.Seed.Days)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_MOCK_DATA", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("database.path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.Database.SeedMockData {
		t.Error("database.seed_mock_data not set from env")
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "https://a.example" {
		t.Errorf("api.cors_origins = %v", cfg.API.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 7777\nlogging:\n  level: warn\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("server.port = %d, want 7777 from file", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want warn from file", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("database.max_memory = %q, want default", cfg.Database.MaxMemory)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server.port = %d, want env override 9001", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative cache ttl", func(c *Config) { c.API.CacheTTL = -time.Second }, true},
		{"negative seed volume", func(c *Config) { c.Seed.SignalsPerDay = -1 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"memory db path is valid", func(c *Config) { c.Database.Path = ":memory:" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformSkipsUnknownVars(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("PATH mapped to %q, want skipped", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("HTTP_PORT mapped to %q", got)
	}
}
