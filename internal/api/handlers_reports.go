// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/metrics"
	"github.com/vibescope/vibescope/internal/models"
)

// maxReportBody bounds the ingest payload. The largest legitimate
// payload is well under 16KB even with maximal details and tags.
const maxReportBody = 16 << 10

// SubmitReport handles POST /api/v1/reports. Reports are immutable:
// every accepted submission becomes a new row, duplicates included.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxReportBody)

	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.IngestErrors.WithLabelValues("validation").Inc()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.IngestErrors.WithLabelValues("validation").Inc()
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	report := &models.Report{
		ID: uuid.NewString(),
		// Receipt time, stamped server-side. Client-supplied timestamps
		// are never honored; backdated rows would rewrite baselines.
		Timestamp:          time.Now().UTC(),
		Model:              req.Model,
		Environment:        req.Environment,
		EnvironmentVersion: req.EnvironmentVersion,
		Mode:               req.Mode,
		IssueCategory:      req.IssueCategory,
		IssueTags:          req.IssueTags,
		Severity:           models.Severity(req.Severity),
		Repro:              models.Repro(req.Repro),
		Vibe:               models.Vibe(req.Vibe),
		Details:            req.Details,
		UserAgent:          r.UserAgent(),
		IPAddress:          r.RemoteAddr,
		Location:           req.Location,
		Source:             models.SourceWeb,
		LatencyMS:          req.LatencyMS,
		HTTPStatus:         req.HTTPStatus,
		ErrorCode:          req.ErrorCode,
	}
	report.NormalizeTags()

	if err := h.db.InsertReport(r.Context(), report); err != nil {
		metrics.IngestErrors.WithLabelValues("store").Inc()
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE",
			"Failed to store report, retry shortly", err)
		return
	}

	metrics.ReportsIngested.WithLabelValues(report.Model, string(report.Vibe), report.Source).Inc()
	logging.Debug().
		Str("report_id", report.ID).
		Str("model", sanitizeLogValue(report.Model)).
		Str("vibe", string(report.Vibe)).
		Msg("Report ingested")

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"id":        report.ID,
		"timestamp": report.Timestamp,
	}, false, started)
}
