// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

import (
	"net/http"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

// Version is the reported service version.
const Version = "1.0.0"

// Health handles GET /api/v1/health. Returns overall status with store
// connectivity and report volume.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dbConnected := h.db != nil && h.db.Ping(ctx) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	var reportCount int64
	if dbConnected {
		if n, err := h.db.CountReports(ctx); err == nil {
			reportCount = n
		}
	}

	health := models.HealthStatus{
		Status:            status,
		Version:           Version,
		DatabaseConnected: dbConnected,
		ReportCount:       reportCount,
		Uptime:            time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only when the report store answers a ping, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !dbConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"ready_to_serve":     dbConnected,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
