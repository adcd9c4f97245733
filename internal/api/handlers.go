// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"time"

	"github.com/vibescope/vibescope/internal/cache"
	"github.com/vibescope/vibescope/internal/config"
	"github.com/vibescope/vibescope/internal/database"
	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/vibe"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response and parameter helpers
//   - handlers_reports.go: report ingest
//   - handlers_vibes.go: dashboard view endpoints
//   - handlers_health.go: health and readiness probes
//   - handlers_seed.go: admin seed trigger
type Handler struct {
	db        *database.DB
	vibes     *vibe.Service
	config    *config.Config
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates an API handler. Writes go straight to db; reads go
// through the vibe service, whose source is the breaker-wrapped store.
// View responses are cached with the configured TTL.
func NewHandler(db *database.DB, vibes *vibe.Service, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		vibes:     vibes,
		config:    cfg,
		cache:     cache.New(cfg.API.CacheTTL),
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached view responses. Called after bulk
// ingest so the next dashboard load recomputes from the new rows.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("View cache cleared")
	}
}

// GetCacheStats returns cache performance statistics
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
