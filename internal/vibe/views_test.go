// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

var viewNow = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

// fakeSource is an in-memory ReportSource for view tests.
type fakeSource struct {
	reports []models.Report
	models  []string
	err     error
}

func (f *fakeSource) ReportsInRange(_ context.Context, model string, from, to time.Time) ([]models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Report
	for _, r := range f.reports {
		if r.Model != model {
			continue
		}
		if r.Timestamp.Before(from) || !r.Timestamp.Before(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSource) RecentReports(_ context.Context, model string, limit int) ([]models.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Report
	for _, r := range f.reports {
		if r.Model == model {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSource) ListModels(_ context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	names := f.models
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func testService(src ReportSource) *Service {
	s := NewService(src)
	s.now = func() time.Time { return viewNow }
	return s
}

// worseReports emits n noticeable/always worse reports (unit weight each)
// on the given day offset before today.
func worseReports(model string, daysAgo, n int) []models.Report {
	day := models.DayOf(viewNow).AddDate(0, 0, -daysAgo)
	out := make([]models.Report, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Report{
			Model:         model,
			Environment:   "ChatGPT Web",
			IssueCategory: "Slowness",
			Timestamp:     day.Add(time.Duration(1+i) * time.Hour),
			Vibe:          models.VibeWorse,
			Severity:      models.SeverityNoticeable,
			Repro:         models.ReproAlways,
		})
	}
	return out
}

func TestSummary(t *testing.T) {
	// Net mass per day: D-3=1, D-2=2, D-1=3, D=4. Today's baseline {1,2,3}
	// has mean 2 and sample stdev 1, so today's index is 80.
	src := &fakeSource{}
	for daysAgo, n := range map[int]int{3: 1, 2: 2, 1: 3, 0: 4} {
		src.reports = append(src.reports, worseReports("GPT-5", daysAgo, n)...)
	}

	sum, err := testService(src).Summary(context.Background(), "GPT-5")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	if math.Abs(sum.TodayIndex100-80) > 1e-9 {
		t.Errorf("today_index_100 = %v, want 80", sum.TodayIndex100)
	}
	if sum.InsufficientBaseline {
		t.Error("insufficient_baseline set with a 3-point baseline")
	}

	// Prior measured days: D-1 has baseline {1,2}, D-2 and D-3 fall back
	// to neutral with thin baselines.
	idxD1 := 50 + 15*(3-1.5)/math.Sqrt(0.5)
	wantAvg := (idxD1 + 50 + 50) / 3
	if math.Abs(sum.AvgPrev7dIndex100-wantAvg) > 1e-9 {
		t.Errorf("avg_prev_7d_index_100 = %v, want %v", sum.AvgPrev7dIndex100, wantAvg)
	}
	if math.Abs(sum.DeltaIndexPts-(80-wantAvg)) > 1e-9 {
		t.Errorf("delta_index_pts = %v, want %v", sum.DeltaIndexPts, 80-wantAvg)
	}
	if sum.Trend != models.TrendUp {
		t.Errorf("trend = %q, want %q", sum.Trend, models.TrendUp)
	}
}

func TestSummaryNoHistory(t *testing.T) {
	sum, err := testService(&fakeSource{}).Summary(context.Background(), "GPT-5")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if sum.TodayIndex100 != 50 || sum.AvgPrev7dIndex100 != 50 || sum.DeltaIndexPts != 0 {
		t.Errorf("empty history summary = %+v, want all-neutral", sum)
	}
	if !sum.InsufficientBaseline {
		t.Error("insufficient_baseline not set with no history")
	}
	if sum.Trend != models.TrendFlat {
		t.Errorf("trend = %q, want flat", sum.Trend)
	}
}

func TestSummaryTrendThreshold(t *testing.T) {
	// Flat 28-day history of net 1 puts stdev at 0 and every index at 50:
	// delta 0 must read flat, not up or down.
	src := &fakeSource{}
	for daysAgo := 0; daysAgo <= 28; daysAgo++ {
		src.reports = append(src.reports, worseReports("GPT-5", daysAgo, 1)...)
	}

	sum, err := testService(src).Summary(context.Background(), "GPT-5")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if sum.Trend != models.TrendFlat {
		t.Errorf("trend = %q, want flat for zero delta", sum.Trend)
	}
}

func TestSummaryUpstreamError(t *testing.T) {
	src := &fakeSource{err: &UpstreamError{Err: errors.New("circuit open")}}
	_, err := testService(src).Summary(context.Background(), "GPT-5")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Errorf("got %v, want UpstreamError to pass through", err)
	}
}

func TestSeries(t *testing.T) {
	src := &fakeSource{}
	src.reports = append(src.reports, worseReports("GPT-5", 2, 2)...)
	src.reports = append(src.reports, worseReports("GPT-5", 0, 1)...)

	points, err := testService(src).Series(context.Background(), "GPT-5", 7)
	if err != nil {
		t.Fatalf("Series error: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}

	today := models.DayOf(viewNow)
	for i, p := range points {
		want := today.AddDate(0, 0, -(6 - i))
		if !p.Day.Equal(want) {
			t.Errorf("point[%d].Day = %v, want %v", i, p.Day, want)
		}
	}

	// Day at offset 2 is measured with net 2; its neighbors are zero-filled.
	if p := points[4]; !p.Measured || math.Abs(p.NetW-2) > 1e-9 {
		t.Errorf("measured day = %+v, want measured with net_w 2", p)
	}
	if p := points[3]; p.Measured || p.NetW != 0 || p.WorseW != 0 {
		t.Errorf("absent day = %+v, want zero-filled and unmeasured", p)
	}
	if p := points[6]; !p.Measured || math.Abs(p.NetW-1) > 1e-9 {
		t.Errorf("today = %+v, want measured with net_w 1", p)
	}
}

func TestSeriesDayClamping(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"zero selects default", 0, DefaultSeriesDays},
		{"below minimum clamps up", 3, MinSeriesDays},
		{"above maximum clamps down", 365, MaxSeriesDays},
		{"in range passes through", 14, 14},
	}

	svc := testService(&fakeSource{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := svc.Series(context.Background(), "GPT-5", tt.days)
			if err != nil {
				t.Fatalf("Series error: %v", err)
			}
			if len(points) != tt.want {
				t.Errorf("len = %d, want %d", len(points), tt.want)
			}
		})
	}
}

func TestIssueBreakdown(t *testing.T) {
	day := models.DayOf(viewNow).AddDate(0, 0, -1)
	src := &fakeSource{reports: []models.Report{
		{Model: "GPT-5", IssueCategory: "Context Memory", Environment: "Cursor IDE",
			Timestamp: day.Add(time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityBlocking, Repro: models.ReproAlways}, // 2.5
		{Model: "GPT-5", IssueCategory: "Context Memory", Environment: "Cursor IDE",
			Timestamp: day.Add(2 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityBlocking, Repro: models.ReproAlways}, // 2.5
		{Model: "GPT-5", IssueCategory: "Slowness", Environment: "ChatGPT Web",
			Timestamp: day.Add(3 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityNoticeable, Repro: models.ReproAlways}, // 1.0
		// Better and normal vibes stay out of the breakdown.
		{Model: "GPT-5", IssueCategory: "Tone", Environment: "ChatGPT Web",
			Timestamp: day.Add(4 * time.Hour), Vibe: models.VibeBetter,
			Severity: models.SeverityBlocking, Repro: models.ReproAlways},
		{Model: "GPT-5", IssueCategory: "Tone", Environment: "ChatGPT Web",
			Timestamp: day.Add(5 * time.Hour), Vibe: models.VibeNormal,
			Severity: models.SeverityBlocking, Repro: models.ReproAlways},
	}}

	rows, err := testService(src).IssueBreakdown(context.Background(), "GPT-5", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("IssueBreakdown error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	if rows[0].IssueCategory != "Context Memory" || rows[0].ReportsN != 2 {
		t.Errorf("top row = %+v, want Context Memory with 2 reports", rows[0])
	}
	if math.Abs(rows[0].ReportsW-5.0) > 1e-9 {
		t.Errorf("top row reports_w = %v, want 5.0", rows[0].ReportsW)
	}
	if math.Abs(rows[0].PctW-5.0/6.0*100) > 1e-6 {
		t.Errorf("top row pct_w = %v, want %v", rows[0].PctW, 5.0/6.0*100)
	}
	if math.Abs(rows[1].PctW-1.0/6.0*100) > 1e-6 {
		t.Errorf("second row pct_w = %v, want %v", rows[1].PctW, 1.0/6.0*100)
	}
}

func TestIssueBreakdownEmptyWindow(t *testing.T) {
	rows, err := testService(&fakeSource{}).IssueBreakdown(context.Background(), "GPT-5", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("IssueBreakdown error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows for empty window, want 0", len(rows))
	}
}

func TestEnvBreakdown(t *testing.T) {
	day := models.DayOf(viewNow).AddDate(0, 0, -1)
	src := &fakeSource{reports: []models.Report{
		{Model: "GPT-5", IssueCategory: "Slowness", Environment: "Cursor IDE",
			Timestamp: day.Add(time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityMajor, Repro: models.ReproAlways}, // 1.6
		{Model: "GPT-5", IssueCategory: "Slowness", Environment: "ChatGPT Web",
			Timestamp: day.Add(2 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityMinor, Repro: models.ReproOnce}, // 0.15
	}}

	rows, err := testService(src).EnvBreakdown(context.Background(), "GPT-5", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("EnvBreakdown error: %v", err)
	}
	if len(rows) != 2 || rows[0].Environment != "Cursor IDE" {
		t.Fatalf("rows = %+v, want Cursor IDE first", rows)
	}
	wantPct := 1.6 / 1.75 * 100
	if math.Abs(rows[0].PctW-wantPct) > 1e-6 {
		t.Errorf("pct_w = %v, want %v", rows[0].PctW, wantPct)
	}
}

func TestTopClusters(t *testing.T) {
	day := models.DayOf(viewNow).AddDate(0, 0, -1)
	src := &fakeSource{reports: []models.Report{
		{Model: "GPT-5", IssueCategory: "Context Memory", Environment: "Cursor IDE",
			Timestamp: day.Add(time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityBlocking, Repro: models.ReproAlways,
			Details: "forgets instructions mid-session"},
		{Model: "GPT-5", IssueCategory: "Context Memory", Environment: "Cursor IDE",
			Timestamp: day.Add(3 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityMajor, Repro: models.ReproOften,
			Details: "drops earlier file context"},
		{Model: "GPT-5", IssueCategory: "Context Memory", Environment: "Cursor IDE",
			Timestamp: day.Add(4 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityMinor, Repro: models.ReproOnce}, // no details
		{Model: "GPT-5", IssueCategory: "Slowness", Environment: "ChatGPT Web",
			Timestamp: day.Add(2 * time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityNoticeable, Repro: models.ReproAlways,
			Details: "responses crawl"},
	}}

	rows, err := testService(src).TopClusters(context.Background(), "GPT-5", time.Time{}, time.Time{}, 10)
	if err != nil {
		t.Fatalf("TopClusters error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d clusters, want 2", len(rows))
	}

	top := rows[0]
	if top.ClusterKey != "Context Memory · Cursor IDE" {
		t.Errorf("cluster_key = %q", top.ClusterKey)
	}
	if top.CntN != 3 {
		t.Errorf("cnt_n = %d, want 3", top.CntN)
	}
	wantW := 2.5 + 1.44 + 0.15
	if math.Abs(top.CntW-wantW) > 1e-9 {
		t.Errorf("cnt_w = %v, want %v", top.CntW, wantW)
	}
	// The newest report has no details, so the example comes from the
	// newest report that has some.
	if top.ExampleDetails != "drops earlier file context" {
		t.Errorf("example_details = %q", top.ExampleDetails)
	}
	if !top.LastSeen.Equal(day.Add(4 * time.Hour)) {
		t.Errorf("last_seen = %v, want %v", top.LastSeen, day.Add(4*time.Hour))
	}
}

func TestTopClustersLimit(t *testing.T) {
	day := models.DayOf(viewNow).AddDate(0, 0, -1)
	src := &fakeSource{}
	for _, env := range []string{"A", "B", "C"} {
		src.reports = append(src.reports, models.Report{
			Model: "GPT-5", IssueCategory: "Slowness", Environment: env,
			Timestamp: day.Add(time.Hour), Vibe: models.VibeWorse,
			Severity: models.SeverityNoticeable, Repro: models.ReproAlways,
		})
	}

	rows, err := testService(src).TopClusters(context.Background(), "GPT-5", time.Time{}, time.Time{}, 2)
	if err != nil {
		t.Fatalf("TopClusters error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d clusters, want limit 2 applied", len(rows))
	}
}

func TestRecent(t *testing.T) {
	day := models.DayOf(viewNow)
	src := &fakeSource{}
	for i := 0; i < 5; i++ {
		src.reports = append(src.reports, models.Report{
			Model: "GPT-5", Timestamp: day.Add(time.Duration(i) * time.Hour),
			Vibe: models.VibeWorse, Severity: models.SeverityMinor, Repro: models.ReproOnce,
		})
	}

	reports, err := testService(src).Recent(context.Background(), "GPT-5", 3)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i := 1; i < len(reports); i++ {
		if reports[i].Timestamp.After(reports[i-1].Timestamp) {
			t.Error("reports not in descending timestamp order")
		}
	}
}

func TestOverview(t *testing.T) {
	src := &fakeSource{models: []string{"GPT-5", "Claude 3.7"}}
	// GPT-5 trends worse today; Claude 3.7 has no reports at all.
	for daysAgo, n := range map[int]int{3: 1, 2: 2, 1: 3, 0: 4} {
		src.reports = append(src.reports, worseReports("GPT-5", daysAgo, n)...)
	}

	cards, err := testService(src).Overview(context.Background(), 10)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Model != "GPT-5" {
		t.Errorf("first card = %q, want GPT-5 (highest index first)", cards[0].Model)
	}
	if !cards[1].InsufficientBaseline {
		t.Error("model with no history should carry the insufficient-baseline flag")
	}
}

func TestNormalizeWindowDefaults(t *testing.T) {
	svc := testService(&fakeSource{})
	from, to := svc.normalizeWindow(time.Time{}, time.Time{})

	today := models.DayOf(viewNow)
	if !to.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("default to = %v, want start of tomorrow", to)
	}
	if !from.Equal(to.AddDate(0, 0, -DefaultWindowDays)) {
		t.Errorf("default from = %v, want %d days before to", from, DefaultWindowDays)
	}

	// Explicit bounds pass through untouched.
	f := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	u := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	gotF, gotU := svc.normalizeWindow(f, u)
	if !gotF.Equal(f) || !gotU.Equal(u) {
		t.Errorf("explicit window changed: got [%v, %v)", gotF, gotU)
	}
}
