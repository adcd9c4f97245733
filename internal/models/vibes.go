// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package models

import "time"

// DailyAggregate is one (model, UTC day, dimension) bucket of weighted vibe
// mass. Absence of a bucket means nothing was reported, which is distinct
// from a bucket whose sums happen to be zero.
type DailyAggregate struct {
	Model     string    `json:"model"`
	Day       time.Time `json:"day"`
	Dimension string    `json:"dimension,omitempty"`
	WorseW    float64   `json:"worse_w"`
	BetterW   float64   `json:"better_w"`
	NetW      float64   `json:"net_w"`
	WorseN    int       `json:"worse_n"`
	BetterN   int       `json:"better_n"`
	TotalN    int       `json:"total_n"`
}

// VibePoint is one day of a fixed-length series. Measured reports whether
// any aggregate existed for the day; unmeasured days are zero-filled for
// display but carry their own index computed against their own baseline.
type VibePoint struct {
	Day      time.Time `json:"day"`
	WorseW   float64   `json:"worse_w"`
	BetterW  float64   `json:"better_w"`
	NetW     float64   `json:"net_w"`
	Index100 float64   `json:"index_100"`
	Measured bool      `json:"measured"`
}

// ModelSummary is the headline card for one model.
type ModelSummary struct {
	Model                string  `json:"model"`
	TodayIndex100        float64 `json:"today_index_100"`
	AvgPrev7dIndex100    float64 `json:"avg_prev_7d_index_100"`
	DeltaIndexPts        float64 `json:"delta_index_pts"`
	Trend                string  `json:"trend"`
	InsufficientBaseline bool    `json:"insufficient_baseline"`
}

// Trend directions for ModelSummary.Trend.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// IssueBreakdownRow is the weighted share of one issue category among
// worse-vibe reports in a window. The wire name of the key is issue_tag:
// the breakdown key is the category, which is always the leading issue tag.
type IssueBreakdownRow struct {
	IssueCategory string  `json:"issue_tag"`
	ReportsW      float64 `json:"reports_w"`
	ReportsN      int     `json:"reports_n"`
	PctW          float64 `json:"pct_w"`
}

// EnvBreakdownRow is the weighted share of one environment among worse-vibe
// reports in a window.
type EnvBreakdownRow struct {
	Environment string  `json:"environment"`
	ReportsW    float64 `json:"reports_w"`
	ReportsN    int     `json:"reports_n"`
	PctW        float64 `json:"pct_w"`
}

// ClusterRow is one (issue category, environment) hotspot of worse-vibe
// reports, ranked by weighted count.
type ClusterRow struct {
	IssueCategory  string    `json:"issue_category"`
	Environment    string    `json:"environment"`
	ClusterKey     string    `json:"cluster_key"`
	CntW           float64   `json:"cnt_w"`
	CntN           int       `json:"cnt_n"`
	ExampleDetails string    `json:"example_details,omitempty"`
	LastSeen       time.Time `json:"last_seen"`
}
