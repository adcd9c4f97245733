// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vibescope/vibescope/internal/cache"
	"github.com/vibescope/vibescope/internal/metrics"
)

// VibesOverview handles GET /api/v1/vibes. Returns the per-model summary
// cards ordered by today's worseness index, worst first.
func (h *Handler) VibesOverview(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	limit := getIntParam(r, "limit", 0)

	key := cache.GenerateKey("overview", limit)
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	rows, err := h.vibes.Overview(r.Context(), limit)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("overview", time.Since(started))

	h.cache.Set(key, rows)
	respondSuccess(w, http.StatusOK, rows, false, started)
}

// VibesSummary handles GET /api/v1/vibes/{model}/summary.
func (h *Handler) VibesSummary(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}

	key := cache.GenerateKey("summary", model)
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	summary, err := h.vibes.Summary(r.Context(), model)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("summary", time.Since(started))
	metrics.RecordIndexComputation(summary.InsufficientBaseline)

	h.cache.Set(key, summary)
	respondSuccess(w, http.StatusOK, summary, false, started)
}

// VibesSeries handles GET /api/v1/vibes/{model}/series?days=30. The
// response always has exactly the clamped number of points, absent days
// zero-filled and flagged unmeasured.
func (h *Handler) VibesSeries(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}
	days := getIntParam(r, "days", 0)

	key := cache.GenerateKey("series", map[string]interface{}{"model": model, "days": days})
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	points, err := h.vibes.Series(r.Context(), model, days)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("series", time.Since(started))

	h.cache.Set(key, points)
	respondSuccess(w, http.StatusOK, points, false, started)
}

// VibesIssues handles GET /api/v1/vibes/{model}/issues?from=&to=.
func (h *Handler) VibesIssues(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}
	from := getTimeParam(r, "from")
	to := getTimeParam(r, "to")

	key := cache.GenerateKey("issues", map[string]interface{}{"model": model, "from": from, "to": to})
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	rows, err := h.vibes.IssueBreakdown(r.Context(), model, from, to)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("issues", time.Since(started))

	h.cache.Set(key, rows)
	respondSuccess(w, http.StatusOK, rows, false, started)
}

// VibesEnvironments handles GET /api/v1/vibes/{model}/environments?from=&to=.
func (h *Handler) VibesEnvironments(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}
	from := getTimeParam(r, "from")
	to := getTimeParam(r, "to")

	key := cache.GenerateKey("environments", map[string]interface{}{"model": model, "from": from, "to": to})
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	rows, err := h.vibes.EnvBreakdown(r.Context(), model, from, to)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("environments", time.Since(started))

	h.cache.Set(key, rows)
	respondSuccess(w, http.StatusOK, rows, false, started)
}

// VibesClusters handles GET /api/v1/vibes/{model}/clusters?from=&to=&limit=.
// Clusters group worse reports by issue category and environment.
func (h *Handler) VibesClusters(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}
	from := getTimeParam(r, "from")
	to := getTimeParam(r, "to")
	limit := getIntParam(r, "limit", 0)

	key := cache.GenerateKey("clusters", map[string]interface{}{
		"model": model, "from": from, "to": to, "limit": limit,
	})
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	rows, err := h.vibes.TopClusters(r.Context(), model, from, to, limit)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("clusters", time.Since(started))

	h.cache.Set(key, rows)
	respondSuccess(w, http.StatusOK, rows, false, started)
}

// VibesRecent handles GET /api/v1/vibes/{model}/recent?limit=20.
func (h *Handler) VibesRecent(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	model := chi.URLParam(r, "model")
	if model == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Model is required", nil)
		return
	}
	limit := getIntParam(r, "limit", 0)

	key := cache.GenerateKey("recent", map[string]interface{}{"model": model, "limit": limit})
	if data, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, data, true, started)
		return
	}

	reports, err := h.vibes.Recent(r.Context(), model, limit)
	if err != nil {
		respondVibeError(w, err)
		return
	}
	metrics.RecordView("recent", time.Since(started))

	h.cache.Set(key, reports)
	respondSuccess(w, http.StatusOK, reports, false, started)
}
