// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the ingest path, view computation, caching, and the
report store boundary using the Prometheus client library.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8480/metrics

# Available Metrics

Ingest Metrics:
  - vibescope_reports_ingested_total: Accepted vibe reports (counter)
    Labels: model, vibe, source
  - vibescope_ingest_errors_total: Rejected or failed submissions (counter)
    Labels: reason (validation, store)
  - vibescope_seeded_reports_total: Synthetic reports inserted by the seeder (counter)

View Metrics:
  - vibescope_view_duration_seconds: View computation time (histogram)
    Labels: view (summary, series, issues, environments, clusters, recent, overview)
  - vibescope_index_computations_total: Worseness Index computations (counter)
  - vibescope_insufficient_baselines_total: Index computations that fell back
    to neutral 50 because the baseline window held fewer than two days (counter)

Cache Metrics:
  - vibescope_cache_hits_total / vibescope_cache_misses_total (counters)
  - vibescope_cache_entries: Current entry count (gauge)

Store Metrics:
  - vibescope_db_query_duration_seconds: Query execution time (histogram)
    Labels: operation
  - vibescope_circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - vibescope_circuit_breaker_transitions_total (counter)
    Labels: name, from, to
  - vibescope_circuit_breaker_requests_total (counter)
    Labels: name, outcome (success, failure, rejected)

HTTP Metrics:
  - vibescope_api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - vibescope_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint

# Cardinality

Endpoint labels use the Chi route pattern (for example /api/v1/vibes/{model}/summary),
never the raw request path, so per-model paths collapse into one series.

Example PromQL queries:

	# Ingest rate by reported vibe
	sum by (vibe) (rate(vibescope_reports_ingested_total[5m]))

	# p95 view computation latency
	histogram_quantile(0.95, rate(vibescope_view_duration_seconds_bucket[5m]))

	# Cache hit rate
	rate(vibescope_cache_hits_total[5m]) /
	  (rate(vibescope_cache_hits_total[5m]) + rate(vibescope_cache_misses_total[5m]))

# Thread Safety

All metric recording functions are safe for concurrent use from multiple
goroutines. The Prometheus client library handles synchronization internally.
*/
package metrics
