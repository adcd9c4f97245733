// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"time"

	"github.com/vibescope/vibescope/internal/models"
)

// DimensionFn extracts an optional secondary grouping key from a report,
// such as its environment or issue category. A nil DimensionFn groups by
// day alone.
type DimensionFn func(*models.Report) string

// DayKey identifies one aggregation bucket. Day is always a midnight-UTC
// time.Date value, so == comparison between keys is exact.
type DayKey struct {
	Day       time.Time
	Dimension string
}

// AggregateDaily folds raw reports into per-day weighted buckets. Worse
// vibes add to WorseW, better vibes to BetterW, normal vibes count toward
// TotalN only. Sums accumulate as float64 with no intermediate rounding.
//
// Days with no reports produce no bucket at all. Downstream consumers must
// preserve that distinction: an absent day is "nothing reported", not a
// measured zero.
func AggregateDaily(reports []models.Report, dim DimensionFn) (map[DayKey]*models.DailyAggregate, error) {
	out := make(map[DayKey]*models.DailyAggregate)
	for i := range reports {
		r := &reports[i]
		w, err := Weight(r.Severity, r.Repro)
		if err != nil {
			return nil, err
		}

		key := DayKey{Day: r.Day()}
		if dim != nil {
			key.Dimension = dim(r)
		}
		agg, ok := out[key]
		if !ok {
			agg = &models.DailyAggregate{
				Model:     r.Model,
				Day:       key.Day,
				Dimension: key.Dimension,
			}
			out[key] = agg
		}

		agg.TotalN++
		switch r.Vibe {
		case models.VibeWorse:
			agg.WorseW += w
			agg.WorseN++
		case models.VibeBetter:
			agg.BetterW += w
			agg.BetterN++
		case models.VibeNormal:
			// counted in TotalN, carries no directional mass
		default:
			return nil, &DomainError{Op: "aggregate", Msg: "unknown vibe " + string(r.Vibe)}
		}
		agg.NetW = agg.WorseW - agg.BetterW
	}
	return out, nil
}

// byDay flattens a dimensionless aggregation into a day-keyed map for the
// index normalizer.
func byDay(aggs map[DayKey]*models.DailyAggregate) map[time.Time]*models.DailyAggregate {
	out := make(map[time.Time]*models.DailyAggregate, len(aggs))
	for k, v := range aggs {
		out[k.Day] = v
	}
	return out
}
