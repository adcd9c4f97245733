// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

/*
Package vibe implements the scoring core: row weighting, daily aggregation,
worseness index normalization, and the read-side views built on them.

The package is pure computation over report snapshots. It holds no state
between calls and performs no I/O of its own; all reads go through the
ReportSource boundary, and every view is a deterministic function of the
snapshot it was handed plus its parameters.

Pipeline:

	Report --Weight--> weighted row --AggregateDaily--> DailyAggregate
	       --IndexFor--> worseness index (0..100, 50 = baseline-normal)

The worseness index compares a day's net weighted mass against a trailing
28-day baseline of that model's own history, so models with noisy, heavily
reported days and models with quiet histories land on the same scale.
*/
package vibe
