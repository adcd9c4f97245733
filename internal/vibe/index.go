// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"math"
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

const (
	// baselineDays is the length of the trailing self-baseline window
	// [D-28, D). The target day itself is always excluded.
	baselineDays = 28

	// minBaselinePoints is the minimum number of measured baseline days
	// required before z-scoring is meaningful.
	minBaselinePoints = 2

	// neutralIndex is the "baseline-normal" center of the 0..100 scale.
	neutralIndex = 50.0

	// zScale maps one standard deviation of net weighted mass to 15 index
	// points, so saturation at 0 or 100 needs |z| >= 10/3.
	zScale = 15.0
)

// IndexFor computes the worseness index of one UTC day from a day-keyed
// aggregate map. The index is always in [0, 100] and never NaN.
//
// Baseline days that are absent from the map are skipped, not treated as
// zero. A missing aggregate for the target day itself is different: the
// window was observed and nothing was reported, so its net mass is a
// measured 0.
//
// With fewer than two baseline points the result is pinned to neutral and
// ErrInsufficientBaseline is returned alongside it. Callers that render the
// index should treat that error as a display flag, not a failure.
func IndexFor(day time.Time, days map[time.Time]*models.DailyAggregate) (float64, error) {
	day = models.DayOf(day)

	baseline := make([]float64, 0, baselineDays)
	for i := baselineDays; i >= 1; i-- {
		if agg, ok := days[day.AddDate(0, 0, -i)]; ok {
			baseline = append(baseline, agg.NetW)
		}
	}

	var net float64
	if agg, ok := days[day]; ok {
		net = agg.NetW
	}

	if len(baseline) < minBaselinePoints {
		return neutralIndex, ErrInsufficientBaseline
	}

	mean, stdev := meanAndSampleStdev(baseline)
	if stdev == 0 {
		// Perfectly flat history. Any departure is infinitely surprising
		// under the z-score model, so saturate without dividing.
		switch {
		case net == mean:
			return neutralIndex, nil
		case net > mean:
			return 100, nil
		default:
			return 0, nil
		}
	}

	z := (net - mean) / stdev
	return clamp(neutralIndex+zScale*z, 0, 100), nil
}

// meanAndSampleStdev returns the mean and the sample standard deviation
// (n-1 denominator) of xs. Sample rather than population stdev: the
// baseline window is a sample of the model's behavior, and the wider
// estimate keeps short windows from overstating confidence.
func meanAndSampleStdev(xs []float64) (float64, float64) {
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / (n - 1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
