// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package api

// SubmitReportRequest is the ingest payload for one vibe report.
// Severity, repro, and vibe are closed enums; details is bounded
// free text. The row timestamp is always stamped server-side at
// receipt; a caller cannot place a report into a past day.
type SubmitReportRequest struct {
	Model              string   `json:"model" validate:"required,max=120"`
	Environment        string   `json:"environment" validate:"required,max=120"`
	EnvironmentVersion string   `json:"environment_version,omitempty" validate:"omitempty,max=64"`
	Mode               string   `json:"mode,omitempty" validate:"omitempty,oneof=text code image audio multimodal"`
	IssueCategory      string   `json:"issue_category" validate:"required,max=64"`
	IssueTags          []string `json:"issue_tags,omitempty" validate:"omitempty,max=10,dive,max=64"`
	Severity           string   `json:"severity" validate:"required,oneof=minor noticeable major blocking"`
	Repro              string   `json:"repro" validate:"required,oneof=once sometimes often always"`
	Vibe               string   `json:"vibe" validate:"required,oneof=worse better normal"`
	Details            string   `json:"details,omitempty" validate:"omitempty,max=2000"`
	Location           string   `json:"location,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	LatencyMS          int      `json:"latency_ms,omitempty" validate:"omitempty,gte=0,lte=600000"`
	HTTPStatus         int      `json:"http_status,omitempty" validate:"omitempty,gte=100,lte=599"`
	ErrorCode          string   `json:"error_code,omitempty" validate:"omitempty,max=64"`
}

// SeedRequest overrides the configured seed generator knobs for one run.
// Zero values keep the configured defaults.
type SeedRequest struct {
	Days           int   `json:"days,omitempty" validate:"omitempty,gte=1,lte=365"`
	SignalsPerDay  int   `json:"signals_per_day,omitempty" validate:"omitempty,gte=1,lte=5000"`
	FeedbackPerDay int   `json:"feedback_per_day,omitempty" validate:"omitempty,gte=1,lte=1000"`
	Seed           int64 `json:"seed,omitempty"`
}
