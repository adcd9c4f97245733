// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package vibe

import (
	"errors"
	"fmt"
)

// ErrInsufficientBaseline reports that a day had fewer than two baseline
// points, so its index was pinned to neutral. It is a flag, not a failure:
// callers surface it alongside the neutral index, never as an HTTP error.
var ErrInsufficientBaseline = errors.New("insufficient baseline")

// DomainError indicates an internal logic failure, such as an unknown
// enumeration value reaching the scoring core. Validated input can never
// trigger one; seeing it in production means a bug upstream.
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("vibe: %s: %s", e.Op, e.Msg)
}

// UpstreamError wraps a report store failure, including an open circuit
// breaker. It marks the condition as retryable for the transport layer.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("report store unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
