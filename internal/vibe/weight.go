// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"fmt"

	"github.com/vibescope/vibescope/internal/models"
)

// Severity and reproducibility multipliers. The product spans [0.15, 2.5]
// and is monotonic in both inputs: a blocking/always report carries about
// 16x the mass of a minor/once report.
var (
	severityWeights = map[models.Severity]float64{
		models.SeverityMinor:      0.5,
		models.SeverityNoticeable: 1.0,
		models.SeverityMajor:      1.6,
		models.SeverityBlocking:   2.5,
	}

	reproWeights = map[models.Repro]float64{
		models.ReproOnce:      0.3,
		models.ReproSometimes: 0.6,
		models.ReproOften:     0.9,
		models.ReproAlways:    1.0,
	}
)

// Weight returns the scoring mass of a single report row as the product of
// its severity and reproducibility multipliers. Unknown enum values return
// a DomainError; validation rejects them at ingest, so reaching this path
// means corrupted data or a missed validation rule.
func Weight(severity models.Severity, repro models.Repro) (float64, error) {
	sw, ok := severityWeights[severity]
	if !ok {
		return 0, &DomainError{Op: "weight", Msg: fmt.Sprintf("unknown severity %q", severity)}
	}
	rw, ok := reproWeights[repro]
	if !ok {
		return 0, &DomainError{Op: "weight", Msg: fmt.Sprintf("unknown repro %q", repro)}
	}
	return sw * rw, nil
}
