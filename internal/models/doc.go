// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

/*
Package models defines data structures shared across the Vibescope service.

It is the single source of truth for the report schema, the enumerated
severity/repro/vibe scales, the aggregated view row types, and the API
response envelope. The package holds data structures only: no I/O, no
mutexes, safe for concurrent reads.

Key Components:

  - Report: one immutable vibe observation (explicit feedback or implicit signal)
  - Severity, Repro, Vibe: closed enumerations driving row weighting
  - DailyAggregate: weighted per-day bucket (worse_w, better_w, net_w)
  - VibePoint, ModelSummary, IssueBreakdownRow, EnvBreakdownRow, ClusterRow:
    typed rows returned by the view layer
  - APIResponse, APIError, Metadata: standard HTTP envelope

See Also:

  - internal/vibe: weighting, daily aggregation, index normalization, views
  - internal/database: DuckDB persistence of Report rows
  - internal/api: HTTP handlers returning these models
*/
package models
