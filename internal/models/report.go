// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package models

import (
	"time"
)

// Severity is the self-reported impact of an observed behavior change.
type Severity string

// Severity levels, ordered from least to most impactful.
const (
	SeverityMinor      Severity = "minor"
	SeverityNoticeable Severity = "noticeable"
	SeverityMajor      Severity = "major"
	SeverityBlocking   Severity = "blocking"
)

// Repro is the self-reported reproducibility of an observed behavior change.
type Repro string

// Reproducibility levels, ordered from least to most frequent.
const (
	ReproOnce      Repro = "once"
	ReproSometimes Repro = "sometimes"
	ReproOften     Repro = "often"
	ReproAlways    Repro = "always"
)

// Vibe is the directional judgment of a report: is the model behaving
// worse, better, or the same as the reporter's expectation.
type Vibe string

// Vibe directions.
const (
	VibeWorse  Vibe = "worse"
	VibeBetter Vibe = "better"
	VibeNormal Vibe = "normal"
)

// Report sources. Explicit user feedback arrives as "web"; synthetic and
// implicit telemetry rows are tagged "seed". Both aggregate identically
// unless a view filters by source.
const (
	SourceWeb  = "web"
	SourceSeed = "seed"
)

// IssueCategories is the closed issue taxonomy. The set is fixed but
// extensible; free-form sub-tags live in Report.IssueTags.
var IssueCategories = []string{
	"Context Memory",
	"Hallucinations",
	"Slowness",
	"Refusals",
	"Tone",
	"Formatting",
	"Tool Use",
	"RAG",
	"Localization",
	"Safety",
}

// MaxDetailsLen bounds the free-text details field.
const MaxDetailsLen = 2000

// Report is one immutable observation of model behavior, either explicit
// user feedback or an implicit telemetry signal. Reports have no natural
// dedup key: every submission is a new row, created once at ingest and
// never mutated.
type Report struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Model              string    `json:"model"`
	Environment        string    `json:"environment"`
	EnvironmentVersion string    `json:"environment_version,omitempty"`
	Mode               string    `json:"mode,omitempty"`
	IssueCategory      string    `json:"issue_category"`
	IssueTags          []string  `json:"issue_tags"`
	Severity           Severity  `json:"severity"`
	Repro              Repro     `json:"repro"`
	Vibe               Vibe      `json:"vibe"`
	Details            string    `json:"details,omitempty"`
	UserAgent          string    `json:"user_agent,omitempty"`
	IPAddress          string    `json:"ip_address,omitempty"`
	Location           string    `json:"location,omitempty"`
	Source             string    `json:"source,omitempty"`
	LatencyMS          int       `json:"latency_ms,omitempty"`
	HTTPStatus         int       `json:"http_status,omitempty"`
	ErrorCode          string    `json:"error_code,omitempty"`
}

// Day returns the UTC calendar day bucket of the report (midnight UTC).
func (r *Report) Day() time.Time {
	return DayOf(r.Timestamp)
}

// NormalizeTags ensures IssueTags always contains IssueCategory as a member.
func (r *Report) NormalizeTags() {
	for _, t := range r.IssueTags {
		if t == r.IssueCategory {
			return
		}
	}
	r.IssueTags = append([]string{r.IssueCategory}, r.IssueTags...)
}

// DayOf truncates a timestamp to its UTC calendar day (00:00:00Z boundary).
func DayOf(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
