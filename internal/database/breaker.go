// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/metrics"
	"github.com/vibescope/vibescope/internal/models"
	"github.com/vibescope/vibescope/internal/vibe"
)

// BreakerSource wraps a report source with a circuit breaker so a sick
// store degrades to fast 503s instead of piling up blocked view requests.
// Failures and rejections both surface as vibe.UpstreamError, which the
// transport layer maps to UPSTREAM_UNAVAILABLE.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for
// its interval and timeout calculations. Tests exercise the wrapped source
// directly and only check the error mapping here.
type BreakerSource struct {
	src  vibe.ReportSource
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerSource wraps src with circuit breaker protection.
// Configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerSource(src vibe.ReportSource) *BreakerSource {
	cbName := "report-store"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerSource{src: src, cb: cb, name: cbName}
}

// execute wraps one store read with breaker protection and error mapping.
func (b *BreakerSource) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, &vibe.UpstreamError{Err: err}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// ReportsInRange delegates to the wrapped source with breaker protection.
func (b *BreakerSource) ReportsInRange(ctx context.Context, model string, from, to time.Time) ([]models.Report, error) {
	return castResult[[]models.Report](b.execute(func() (any, error) {
		return b.src.ReportsInRange(ctx, model, from, to)
	}))
}

// RecentReports delegates to the wrapped source with breaker protection.
func (b *BreakerSource) RecentReports(ctx context.Context, model string, limit int) ([]models.Report, error) {
	return castResult[[]models.Report](b.execute(func() (any, error) {
		return b.src.RecentReports(ctx, model, limit)
	}))
}

// ListModels delegates to the wrapped source with breaker protection.
func (b *BreakerSource) ListModels(ctx context.Context, limit int) ([]string, error) {
	return castResult[[]string](b.execute(func() (any, error) {
		return b.src.ListModels(ctx, limit)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
