// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"math"
	"testing"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

func mkReport(ts time.Time, vibe models.Vibe, sev models.Severity, rep models.Repro) models.Report {
	return models.Report{
		Model:         "GPT-5",
		Environment:   "ChatGPT Web",
		IssueCategory: "Slowness",
		Timestamp:     ts,
		Vibe:          vibe,
		Severity:      sev,
		Repro:         rep,
	}
}

func TestAggregateDaily(t *testing.T) {
	day1 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	reports := []models.Report{
		// day1: worse 2.5, worse 1.0, better 0.3, normal
		mkReport(day1.Add(2*time.Hour), models.VibeWorse, models.SeverityBlocking, models.ReproAlways),
		mkReport(day1.Add(5*time.Hour), models.VibeWorse, models.SeverityNoticeable, models.ReproAlways),
		mkReport(day1.Add(9*time.Hour), models.VibeBetter, models.SeverityMinor, models.ReproSometimes),
		mkReport(day1.Add(23*time.Hour), models.VibeNormal, models.SeverityMinor, models.ReproOnce),
		// day2: single better 1.0
		mkReport(day2.Add(1*time.Hour), models.VibeBetter, models.SeverityNoticeable, models.ReproAlways),
	}

	aggs, err := AggregateDaily(reports, nil)
	if err != nil {
		t.Fatalf("AggregateDaily error: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("got %d buckets, want 2", len(aggs))
	}

	a1 := aggs[DayKey{Day: day1}]
	if a1 == nil {
		t.Fatal("missing bucket for day1")
	}
	if math.Abs(a1.WorseW-3.5) > 1e-9 || math.Abs(a1.BetterW-0.3) > 1e-9 {
		t.Errorf("day1 worse_w=%v better_w=%v, want 3.5 / 0.3", a1.WorseW, a1.BetterW)
	}
	if math.Abs(a1.NetW-3.2) > 1e-9 {
		t.Errorf("day1 net_w = %v, want 3.2", a1.NetW)
	}
	if a1.WorseN != 2 || a1.BetterN != 1 || a1.TotalN != 4 {
		t.Errorf("day1 counts = %d/%d/%d, want 2/1/4", a1.WorseN, a1.BetterN, a1.TotalN)
	}

	a2 := aggs[DayKey{Day: day2}]
	if a2 == nil {
		t.Fatal("missing bucket for day2")
	}
	if math.Abs(a2.NetW-(-1.0)) > 1e-9 {
		t.Errorf("day2 net_w = %v, want -1.0", a2.NetW)
	}
}

func TestAggregateDailyAdditivity(t *testing.T) {
	day1 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	reports := []models.Report{
		mkReport(day1.Add(1*time.Hour), models.VibeWorse, models.SeverityBlocking, models.ReproAlways),
		mkReport(day1.Add(3*time.Hour), models.VibeBetter, models.SeverityMinor, models.ReproSometimes),
		mkReport(day1.Add(8*time.Hour), models.VibeWorse, models.SeverityMajor, models.ReproOften),
		mkReport(day1.Add(20*time.Hour), models.VibeNormal, models.SeverityMinor, models.ReproOnce),
		mkReport(day2.Add(2*time.Hour), models.VibeWorse, models.SeverityNoticeable, models.ReproOnce),
		mkReport(day2.Add(7*time.Hour), models.VibeBetter, models.SeverityNoticeable, models.ReproAlways),
	}

	// Aggregating disjoint halves must sum to aggregating the union.
	whole, err := AggregateDaily(reports, nil)
	if err != nil {
		t.Fatalf("AggregateDaily(whole) error: %v", err)
	}
	first, err := AggregateDaily(reports[:3], nil)
	if err != nil {
		t.Fatalf("AggregateDaily(first) error: %v", err)
	}
	second, err := AggregateDaily(reports[3:], nil)
	if err != nil {
		t.Fatalf("AggregateDaily(second) error: %v", err)
	}

	for key, want := range whole {
		var worseW, betterW, netW float64
		var worseN, betterN, totalN int
		for _, part := range []map[DayKey]*models.DailyAggregate{first, second} {
			if agg, ok := part[key]; ok {
				worseW += agg.WorseW
				betterW += agg.BetterW
				netW += agg.NetW
				worseN += agg.WorseN
				betterN += agg.BetterN
				totalN += agg.TotalN
			}
		}
		if math.Abs(worseW-want.WorseW) > 1e-9 || math.Abs(betterW-want.BetterW) > 1e-9 {
			t.Errorf("%v: split sums worse_w=%v better_w=%v, whole has %v / %v",
				key.Day, worseW, betterW, want.WorseW, want.BetterW)
		}
		if math.Abs(netW-want.NetW) > 1e-9 {
			t.Errorf("%v: split net_w sum = %v, whole has %v", key.Day, netW, want.NetW)
		}
		if worseN != want.WorseN || betterN != want.BetterN || totalN != want.TotalN {
			t.Errorf("%v: split counts %d/%d/%d, whole has %d/%d/%d",
				key.Day, worseN, betterN, totalN, want.WorseN, want.BetterN, want.TotalN)
		}
	}
}

func TestAggregateDailyAbsentDaysProduceNoBucket(t *testing.T) {
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	aggs, err := AggregateDaily([]models.Report{
		mkReport(day, models.VibeWorse, models.SeverityMinor, models.ReproOnce),
	}, nil)
	if err != nil {
		t.Fatalf("AggregateDaily error: %v", err)
	}

	if _, ok := aggs[DayKey{Day: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)}]; ok {
		t.Error("bucket exists for a day with no reports")
	}
	if len(aggs) != 1 {
		t.Errorf("got %d buckets, want 1", len(aggs))
	}
}

func TestAggregateDailyDimension(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	r1 := mkReport(day.Add(time.Hour), models.VibeWorse, models.SeverityNoticeable, models.ReproAlways)
	r2 := mkReport(day.Add(2*time.Hour), models.VibeWorse, models.SeverityNoticeable, models.ReproAlways)
	r2.Environment = "Cursor IDE"

	aggs, err := AggregateDaily([]models.Report{r1, r2}, func(r *models.Report) string {
		return r.Environment
	})
	if err != nil {
		t.Fatalf("AggregateDaily error: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("got %d buckets, want 2 (one per environment)", len(aggs))
	}
	for _, k := range []DayKey{
		{Day: day, Dimension: "ChatGPT Web"},
		{Day: day, Dimension: "Cursor IDE"},
	} {
		agg, ok := aggs[k]
		if !ok {
			t.Fatalf("missing bucket %+v", k)
		}
		if agg.TotalN != 1 || math.Abs(agg.NetW-1.0) > 1e-9 {
			t.Errorf("bucket %+v: total_n=%d net_w=%v, want 1 / 1.0", k, agg.TotalN, agg.NetW)
		}
	}
}

func TestAggregateDailyUnknownVibe(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	r := mkReport(day, "meh", models.SeverityMinor, models.ReproOnce)

	if _, err := AggregateDaily([]models.Report{r}, nil); err == nil {
		t.Error("unknown vibe accepted, want DomainError")
	}
}

func TestAggregateDailyBucketsByUTCDay(t *testing.T) {
	// 2026-08-30 22:00 UTC-5 is 2026-08-31 03:00 UTC.
	ts := time.Date(2026, 8, 30, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	aggs, err := AggregateDaily([]models.Report{
		mkReport(ts, models.VibeWorse, models.SeverityMinor, models.ReproOnce),
	}, nil)
	if err != nil {
		t.Fatalf("AggregateDaily error: %v", err)
	}

	want := DayKey{Day: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)}
	if _, ok := aggs[want]; !ok {
		t.Errorf("report bucketed into %v, want %v", keysOf(aggs), want.Day)
	}
}

func keysOf(aggs map[DayKey]*models.DailyAggregate) []DayKey {
	out := make([]DayKey, 0, len(aggs))
	for k := range aggs {
		out = append(out, k)
	}
	return out
}
