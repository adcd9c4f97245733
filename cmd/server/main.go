// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

// Package main is the entry point for the Vibescope server application.
//
// Vibescope is a self-hosted monitoring service that answers "is this AI
// model worse today?" It ingests vibe reports (implicit signals and
// explicit user feedback), weights them by severity and reproducibility,
// and normalizes daily scores into a 0-100 Worseness Index against each
// model's own 28-day baseline.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB as the report store
//  3. Seeding (optional): Populate synthetic reports when the store is empty
//  4. Vibe Service: Scoring and view computation behind a circuit breaker
//  5. HTTP Server: REST API with Chi routing and Prometheus metrics
//  6. Supervisor Tree: suture-managed lifecycle for all long-running services
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Mock Data
//
// For demos and CI, set SEED_MOCK_DATA=true to generate a reproducible
// synthetic dataset on startup when the store is empty. The same
// generator backs POST /api/v1/admin/seed.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Checkpoints and closes the database
//
// # Example Usage
//
// Development with an in-memory store and seeded data:
//
//	export DUCKDB_PATH=:memory:
//	export SEED_MOCK_DATA=true
//	export LOG_FORMAT=console
//	./vibescope
//
// Production:
//
//	export DUCKDB_PATH=/data/vibescope.duckdb
//	export ENVIRONMENT=production
//	export CORS_ORIGINS=https://vibes.example.com
//	./vibescope
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibescope/vibescope/internal/api"
	"github.com/vibescope/vibescope/internal/config"
	"github.com/vibescope/vibescope/internal/database"
	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/seed"
	"github.com/vibescope/vibescope/internal/supervisor"
	"github.com/vibescope/vibescope/internal/supervisor/services"
	"github.com/vibescope/vibescope/internal/vibe"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Vibescope with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Dur("cache_ttl", cfg.API.CacheTTL).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Seed mock data if enabled. Only an empty store is seeded so
	// restarts never duplicate history.
	if cfg.Database.SeedMockData {
		if err := seedIfEmpty(context.Background(), cfg, db); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The report store sits behind a circuit breaker so a wedged DuckDB
	// surfaces as 503 UPSTREAM_UNAVAILABLE instead of piling up requests.
	vibes := vibe.NewService(database.NewBreakerSource(db))

	handler := api.NewHandler(db, vibes, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.API.RateLimitReqs,
		RateLimitWindow:    cfg.API.RateLimitWindow,
	}))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create supervisor tree using the zerolog-backed slog adapter for
	// sutureslog compatibility
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	tree.AddDataService(services.NewCheckpointService(db, services.DefaultCheckpointInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// seedIfEmpty populates the store with synthetic reports when it holds
// no data yet. Controlled by SEED_MOCK_DATA.
func seedIfEmpty(ctx context.Context, cfg *config.Config, db *database.DB) error {
	count, err := db.CountReports(ctx)
	if err != nil {
		return fmt.Errorf("count reports: %w", err)
	}
	if count > 0 {
		logging.Info().Int64("reports", count).Msg("Store already populated, skipping mock data seed")
		return nil
	}

	logging.Info().
		Int("days", cfg.Seed.Days).
		Int64("seed", cfg.Seed.Seed).
		Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")

	inserted, err := seed.New(cfg.Seed, db).Run(ctx)
	if err != nil {
		return fmt.Errorf("seed mock data: %w", err)
	}
	logging.Info().Int("inserted", inserted).Msg("Mock data seeded")
	return nil
}
