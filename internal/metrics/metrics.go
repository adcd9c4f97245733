// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Report ingest volume
// - View query latency and cache efficiency
// - Worseness index computations
// - Report store health (circuit breaker)
// - API endpoint latency and throughput

var (
	// Ingest Metrics
	ReportsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibescope_reports_ingested_total",
			Help: "Total number of ingested vibe reports",
		},
		[]string{"model", "vibe", "source"},
	)

	IngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibescope_ingest_errors_total",
			Help: "Total number of failed report ingests",
		},
		[]string{"reason"}, // "validation", "store"
	)

	// View Metrics
	ViewDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibescope_view_duration_seconds",
			Help:    "Duration of view computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"}, // "summary", "series", "issues", "environments", "clusters", "recent", "overview"
	)

	IndexComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibescope_index_computations_total",
			Help: "Total number of worseness index computations",
		},
	)

	InsufficientBaselines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibescope_insufficient_baselines_total",
			Help: "Total number of index computations pinned to neutral for lack of baseline",
		},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibescope_cache_hits_total",
			Help: "Total number of view cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibescope_cache_misses_total",
			Help: "Total number of view cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vibescope_cache_entries",
			Help: "Current number of cached view responses",
		},
	)

	// Report Store Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibescope_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vibescope_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibescope_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibescope_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibescope_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibescope_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Seed Generator Metrics
	SeededReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibescope_seeded_reports_total",
			Help: "Total number of synthetic reports inserted by the seed generator",
		},
	)
)

// RecordView observes one view computation.
func RecordView(view string, duration time.Duration) {
	ViewDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request with its outcome.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordIndexComputation counts one index computation and whether it fell
// back to the neutral value for lack of baseline.
func RecordIndexComputation(insufficient bool) {
	IndexComputations.Inc()
	if insufficient {
		InsufficientBaselines.Inc()
	}
}
