// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

// View parameter bounds. Out-of-range values clamp rather than error, and
// zero means "use the default".
const (
	MinSeriesDays     = 7
	MaxSeriesDays     = 90
	DefaultSeriesDays = 30

	MaxRecentLimit     = 100
	DefaultRecentLimit = 20

	MaxClusterLimit     = 50
	DefaultClusterLimit = 20

	MaxOverviewLimit     = 24
	DefaultOverviewLimit = 8

	// DefaultWindowDays is the trailing window applied when a breakdown or
	// cluster view is called without an explicit date range.
	DefaultWindowDays = 30

	// trendThreshold is the index-point delta below which the trend reads
	// as flat.
	trendThreshold = 2.0
)

// ReportSource is the read boundary the views consume. Each call returns a
// consistent snapshot; the views never combine data across calls for a
// single response.
type ReportSource interface {
	// ReportsInRange returns all reports for model with timestamp in
	// [from, to), in no particular order.
	ReportsInRange(ctx context.Context, model string, from, to time.Time) ([]models.Report, error)

	// RecentReports returns the newest reports for model, timestamp
	// descending, at most limit rows.
	RecentReports(ctx context.Context, model string, limit int) ([]models.Report, error)

	// ListModels returns known model names by descending total report
	// count, at most limit names.
	ListModels(ctx context.Context, limit int) ([]string, error)
}

// Service computes the read-side views. Every method is a pure function of
// one ReportSource snapshot and its parameters, which is what makes the
// response cache in front of it safe.
type Service struct {
	src ReportSource
	now func() time.Time
}

// NewService wires a view service over a report source.
func NewService(src ReportSource) *Service {
	return &Service{src: src, now: time.Now}
}

// Summary builds the headline card for one model: today's worseness index,
// the mean index over the prior seven measured days, and the delta between
// them expressed as a trend.
func (s *Service) Summary(ctx context.Context, model string) (*models.ModelSummary, error) {
	today := models.DayOf(s.now())

	// 28 baseline days for the oldest of the 7 prior days, plus the days
	// themselves, plus today.
	from := today.AddDate(0, 0, -(baselineDays + 7))
	to := today.AddDate(0, 0, 1)
	reports, err := s.src.ReportsInRange(ctx, model, from, to)
	if err != nil {
		return nil, err
	}

	aggs, err := AggregateDaily(reports, nil)
	if err != nil {
		return nil, err
	}
	days := byDay(aggs)

	todayIdx, err := IndexFor(today, days)
	insufficient := errors.Is(err, ErrInsufficientBaseline)
	if err != nil && !insufficient {
		return nil, err
	}

	var (
		sum      float64
		measured int
	)
	for i := 1; i <= 7; i++ {
		d := today.AddDate(0, 0, -i)
		if _, ok := days[d]; !ok {
			continue
		}
		idx, err := IndexFor(d, days)
		if err != nil && !errors.Is(err, ErrInsufficientBaseline) {
			return nil, err
		}
		sum += idx
		measured++
	}
	avg := neutralIndex
	if measured > 0 {
		avg = sum / float64(measured)
	}

	delta := todayIdx - avg
	trend := models.TrendFlat
	switch {
	case delta > trendThreshold:
		trend = models.TrendUp
	case delta < -trendThreshold:
		trend = models.TrendDown
	}

	return &models.ModelSummary{
		Model:                model,
		TodayIndex100:        todayIdx,
		AvgPrev7dIndex100:    avg,
		DeltaIndexPts:        delta,
		Trend:                trend,
		InsufficientBaseline: insufficient,
	}, nil
}

// Series returns a fixed-length window of daily points ending today. Days
// is clamped to [MinSeriesDays, MaxSeriesDays]; zero selects the default.
// Every day in the window yields exactly one point: unmeasured days are
// zero-filled with Measured false so sparklines stay aligned.
func (s *Service) Series(ctx context.Context, model string, days int) ([]models.VibePoint, error) {
	days = clampInt(days, MinSeriesDays, MaxSeriesDays, DefaultSeriesDays)

	today := models.DayOf(s.now())
	start := today.AddDate(0, 0, -(days - 1))
	from := start.AddDate(0, 0, -baselineDays)
	to := today.AddDate(0, 0, 1)

	reports, err := s.src.ReportsInRange(ctx, model, from, to)
	if err != nil {
		return nil, err
	}
	aggs, err := AggregateDaily(reports, nil)
	if err != nil {
		return nil, err
	}
	dayMap := byDay(aggs)

	points := make([]models.VibePoint, 0, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		idx, err := IndexFor(d, dayMap)
		if err != nil && !errors.Is(err, ErrInsufficientBaseline) {
			return nil, err
		}
		p := models.VibePoint{Day: d, Index100: idx}
		if agg, ok := dayMap[d]; ok {
			p.WorseW = agg.WorseW
			p.BetterW = agg.BetterW
			p.NetW = agg.NetW
			p.Measured = true
		}
		points = append(points, p)
	}
	return points, nil
}

// IssueBreakdown returns the weighted share of each issue category among
// worse-vibe reports in [from, to). Zero times select the default trailing
// window. An empty window yields an empty slice, never an error.
func (s *Service) IssueBreakdown(ctx context.Context, model string, from, to time.Time) ([]models.IssueBreakdownRow, error) {
	from, to = s.normalizeWindow(from, to)
	reports, err := s.src.ReportsInRange(ctx, model, from, to)
	if err != nil {
		return nil, err
	}

	type acc struct {
		w float64
		n int
	}
	sums := make(map[string]*acc)
	var total float64
	for i := range reports {
		r := &reports[i]
		if r.Vibe != models.VibeWorse {
			continue
		}
		w, err := Weight(r.Severity, r.Repro)
		if err != nil {
			return nil, err
		}
		a, ok := sums[r.IssueCategory]
		if !ok {
			a = &acc{}
			sums[r.IssueCategory] = a
		}
		a.w += w
		a.n++
		total += w
	}

	rows := make([]models.IssueBreakdownRow, 0, len(sums))
	for cat, a := range sums {
		row := models.IssueBreakdownRow{IssueCategory: cat, ReportsW: a.w, ReportsN: a.n}
		if total > 0 {
			row.PctW = a.w / total * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ReportsW != rows[j].ReportsW {
			return rows[i].ReportsW > rows[j].ReportsW
		}
		return rows[i].IssueCategory < rows[j].IssueCategory
	})
	return rows, nil
}

// EnvBreakdown returns the weighted share of each environment among
// worse-vibe reports in [from, to), with the same windowing rules as
// IssueBreakdown.
func (s *Service) EnvBreakdown(ctx context.Context, model string, from, to time.Time) ([]models.EnvBreakdownRow, error) {
	from, to = s.normalizeWindow(from, to)
	reports, err := s.src.ReportsInRange(ctx, model, from, to)
	if err != nil {
		return nil, err
	}

	type acc struct {
		w float64
		n int
	}
	sums := make(map[string]*acc)
	var total float64
	for i := range reports {
		r := &reports[i]
		if r.Vibe != models.VibeWorse {
			continue
		}
		w, err := Weight(r.Severity, r.Repro)
		if err != nil {
			return nil, err
		}
		a, ok := sums[r.Environment]
		if !ok {
			a = &acc{}
			sums[r.Environment] = a
		}
		a.w += w
		a.n++
		total += w
	}

	rows := make([]models.EnvBreakdownRow, 0, len(sums))
	for env, a := range sums {
		row := models.EnvBreakdownRow{Environment: env, ReportsW: a.w, ReportsN: a.n}
		if total > 0 {
			row.PctW = a.w / total * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ReportsW != rows[j].ReportsW {
			return rows[i].ReportsW > rows[j].ReportsW
		}
		return rows[i].Environment < rows[j].Environment
	})
	return rows, nil
}

// TopClusters groups worse-vibe reports by (issue category, environment)
// and ranks the clusters by weighted count. Each cluster carries its most
// recent non-empty details text as an example and the timestamp of its
// newest report.
func (s *Service) TopClusters(ctx context.Context, model string, from, to time.Time, limit int) ([]models.ClusterRow, error) {
	limit = clampInt(limit, 1, MaxClusterLimit, DefaultClusterLimit)
	from, to = s.normalizeWindow(from, to)

	reports, err := s.src.ReportsInRange(ctx, model, from, to)
	if err != nil {
		return nil, err
	}

	type key struct{ cat, env string }
	type cluster struct {
		row       models.ClusterRow
		exampleTS time.Time
	}
	clusters := make(map[key]*cluster)
	for i := range reports {
		r := &reports[i]
		if r.Vibe != models.VibeWorse {
			continue
		}
		w, err := Weight(r.Severity, r.Repro)
		if err != nil {
			return nil, err
		}
		k := key{cat: r.IssueCategory, env: r.Environment}
		c, ok := clusters[k]
		if !ok {
			c = &cluster{row: models.ClusterRow{
				IssueCategory: r.IssueCategory,
				Environment:   r.Environment,
				ClusterKey:    r.IssueCategory + " · " + r.Environment,
			}}
			clusters[k] = c
		}
		c.row.CntW += w
		c.row.CntN++
		if r.Timestamp.After(c.row.LastSeen) {
			c.row.LastSeen = r.Timestamp
		}
		if r.Details != "" && r.Timestamp.After(c.exampleTS) {
			c.row.ExampleDetails = r.Details
			c.exampleTS = r.Timestamp
		}
	}

	rows := make([]models.ClusterRow, 0, len(clusters))
	for _, c := range clusters {
		rows = append(rows, c.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CntW != rows[j].CntW {
			return rows[i].CntW > rows[j].CntW
		}
		if !rows[i].LastSeen.Equal(rows[j].LastSeen) {
			return rows[i].LastSeen.After(rows[j].LastSeen)
		}
		return rows[i].ClusterKey < rows[j].ClusterKey
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Recent returns the newest reports for a model verbatim, timestamp
// descending. Limit is clamped to [1, MaxRecentLimit]; zero selects the
// default.
func (s *Service) Recent(ctx context.Context, model string, limit int) ([]models.Report, error) {
	limit = clampInt(limit, 1, MaxRecentLimit, DefaultRecentLimit)
	reports, err := s.src.RecentReports(ctx, model, limit)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// Overview builds a Summary per known model and orders the cards by
// today's index descending, worst vibes first.
func (s *Service) Overview(ctx context.Context, limit int) ([]models.ModelSummary, error) {
	limit = clampInt(limit, 1, MaxOverviewLimit, DefaultOverviewLimit)
	names, err := s.src.ListModels(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.ModelSummary, 0, len(names))
	for _, name := range names {
		sum, err := s.Summary(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TodayIndex100 != out[j].TodayIndex100 {
			return out[i].TodayIndex100 > out[j].TodayIndex100
		}
		return out[i].Model < out[j].Model
	})
	return out, nil
}

// normalizeWindow fills absent date parameters with the default trailing
// window: [today-DefaultWindowDays, tomorrow). A provided from without a to
// extends through the end of today, and vice versa.
func (s *Service) normalizeWindow(from, to time.Time) (time.Time, time.Time) {
	today := models.DayOf(s.now())
	if to.IsZero() {
		to = today.AddDate(0, 0, 1)
	}
	if from.IsZero() {
		from = models.DayOf(to).AddDate(0, 0, -DefaultWindowDays)
	}
	return from, to
}

// clampInt applies the shared view-parameter convention: zero or negative
// selects def, anything else clamps into [lo, hi].
func clampInt(v, lo, hi, def int) int {
	if v <= 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
