// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/models"
	"github.com/vibescope/vibescope/internal/seed"
)

// SeedMockData handles POST /api/v1/admin/seed. It fills the store with
// deterministic synthetic reports for demos and CI screenshots. Refused
// in production unless seeding is explicitly enabled in config.
func (h *Handler) SeedMockData(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if h.config.IsProduction() && !h.config.Database.SeedMockData {
		respondError(w, http.StatusForbidden, "FORBIDDEN",
			"Seeding is disabled in production", nil)
		return
	}

	var req SeedRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
			return
		}
		if apiErr := validateRequest(&req); apiErr != nil {
			respondJSON(w, http.StatusBadRequest, &models.APIResponse{
				Status:   "error",
				Metadata: models.Metadata{Timestamp: time.Now()},
				Error:    apiErr,
			})
			return
		}
	}

	cfg := h.config.Seed
	if req.Days > 0 {
		cfg.Days = req.Days
	}
	if req.SignalsPerDay > 0 {
		cfg.SignalsPerDay = req.SignalsPerDay
	}
	if req.FeedbackPerDay > 0 {
		cfg.FeedbackPerDay = req.FeedbackPerDay
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	inserted, err := seed.New(cfg, h.db).Run(r.Context())
	if err != nil {
		logging.Error().Err(err).Int("inserted", inserted).Msg("Seed run failed")
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE",
			"Seed run failed partway through", err)
		return
	}

	h.ClearCache()

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"inserted": inserted,
		"days":     cfg.Days,
		"seed":     cfg.Seed,
	}, false, started)
}
