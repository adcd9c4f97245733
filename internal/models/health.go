// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package models

// HealthStatus reports overall service health for the full health
// endpoint. Liveness and readiness probes return smaller payloads.
type HealthStatus struct {
	Status            string  `json:"status"` // "healthy" or "degraded"
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	ReportCount       int64   `json:"report_count"`
	Uptime            float64 `json:"uptime_seconds"`
}
