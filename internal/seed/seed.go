// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

// Package seed generates deterministic synthetic vibe reports so a fresh
// deployment has a believable dashboard before real traffic arrives.
//
// The generator produces two streams per day: a high-volume implicit
// signal stream and a smaller explicit feedback stream. Volumes dip on
// weekends, model and issue popularity follow Zipf distributions, and two
// incident windows inside the generated range multiply report volume so
// the worseness index has visible spikes to surface.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/vibescope/vibescope/internal/config"
	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/metrics"
	"github.com/vibescope/vibescope/internal/models"
)

// Store is the destination for generated reports.
type Store interface {
	InsertReport(ctx context.Context, r *models.Report) error
}

// Generator produces synthetic reports from a fixed seed. Two generators
// with the same config emit identical report streams, timestamps included,
// apart from the UUIDs.
type Generator struct {
	cfg     config.SeedConfig
	store   Store
	rng     *rng
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a generator. A zero RatePerSec disables insert pacing.
func New(cfg config.SeedConfig, store Store) *Generator {
	g := &Generator{
		cfg:   cfg,
		store: store,
		rng:   newRNG(cfg.Seed),
		now:   time.Now,
	}
	if cfg.RatePerSec > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	return g
}

// Run generates and inserts reports for the configured day range, oldest
// day first. Returns the number of rows inserted. Respects ctx: a cancel
// stops mid-run with the rows inserted so far.
func (g *Generator) Run(ctx context.Context) (int, error) {
	start := g.now()
	// Noon anchor keeps generated days stable across timezones.
	base := models.DayOf(start).Add(12 * time.Hour)

	logging.Info().
		Int("days", g.cfg.Days).
		Int("signals_per_day", g.cfg.SignalsPerDay).
		Int("feedback_per_day", g.cfg.FeedbackPerDay).
		Int64("seed", g.cfg.Seed).
		Msg("Seeding synthetic reports")

	inserted := 0
	for i := g.cfg.Days - 1; i >= 0; i-- {
		day := base.AddDate(0, 0, -i)

		nSignals := g.jitter(max(8, int(float64(g.cfg.SignalsPerDay)*weekdayMultiplier(day)+0.5)), 0.25)
		nFeedback := g.jitter(max(3, int(float64(g.cfg.FeedbackPerDay)*weekdayMultiplier(day)+0.5)), 0.35)

		for k := 0; k < nSignals; k++ {
			ts := g.timeOfDay(day, 0, 23)
			r := g.buildReport(ts, true)

			// Incident windows emit duplicate rows instead of scaling
			// weights, so per-report attributes stay untouched.
			copies := max(1, int(g.spikeFactor(i, r)+0.5))
			for c := 0; c < copies; c++ {
				if err := g.insert(ctx, r); err != nil {
					return inserted, err
				}
				inserted++
			}
		}

		for k := 0; k < nFeedback; k++ {
			ts := g.timeOfDay(day, 8, 22)
			r := g.buildReport(ts, false)
			if err := g.insert(ctx, r); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	logging.Info().
		Int("inserted", inserted).
		Dur("elapsed", g.now().Sub(start)).
		Msg("Seed run complete")

	return inserted, nil
}

func (g *Generator) insert(ctx context.Context, r *models.Report) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("seed pacing interrupted: %w", err)
		}
	}

	// Duplicate spike rows share attributes but never an ID.
	row := *r
	row.ID = uuid.NewString()

	if err := g.store.InsertReport(ctx, &row); err != nil {
		return fmt.Errorf("failed to insert seeded report: %w", err)
	}
	metrics.SeededReports.Inc()
	return nil
}

// buildReport synthesizes one report. Implicit signals skew harder toward
// "worse" than explicit feedback does.
func (g *Generator) buildReport(ts time.Time, implicit bool) *models.Report {
	model := g.pickWeighted(modelWeights)
	environment := g.pickWeighted(envWeights)
	category := g.pickWeighted(issueWeightsFor(model))

	r := &models.Report{
		Timestamp:          ts,
		Model:              model,
		Environment:        environment,
		EnvironmentVersion: g.envVersion(environment, ts),
		Mode:               guessMode(environment, category),
		IssueCategory:      category,
		IssueTags:          g.pickTags(category),
		Severity:           g.pickSeverity(category),
		Repro:              g.pickRepro(category),
		Vibe:               g.pickVibe(implicit),
		Details:            synthDetails(category, model, environment),
		UserAgent:          g.pick(userAgents),
		Location:           g.pick(countries),
		LatencyMS:          g.latencyFor(category, environment),
	}

	if implicit {
		r.Source = models.SourceSeed
		r.IPAddress = fmt.Sprintf("198.51.%d.%d", g.intn(0, 254), g.intn(1, 254))
	} else {
		r.Source = models.SourceWeb
		r.IPAddress = fmt.Sprintf("203.0.%d.%d", g.intn(0, 254), g.intn(1, 254))
	}

	r.HTTPStatus, r.ErrorCode = g.statusAndError(category)
	return r
}

// timeOfDay places a timestamp within the given UTC hour range of day.
func (g *Generator) timeOfDay(day time.Time, hourLo, hourHi int) time.Time {
	d := models.DayOf(day)
	return d.Add(time.Duration(g.intn(hourLo, hourHi))*time.Hour +
		time.Duration(g.intn(0, 59))*time.Minute +
		time.Duration(g.intn(0, 59))*time.Second +
		time.Duration(g.intn(0, 999))*time.Millisecond)
}

// jitter perturbs n by up to +-pct.
func (g *Generator) jitter(n int, pct float64) int {
	d := int(float64(n)*pct + 0.5)
	return n + g.intn(-d, d)
}

// weekdayMultiplier dampens weekend volume.
func weekdayMultiplier(d time.Time) float64 {
	wd := d.UTC().Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return 0.7
	}
	return 1.0
}
