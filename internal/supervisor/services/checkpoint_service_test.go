// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (m *mockCheckpointer) Checkpoint(_ context.Context) error {
	m.calls.Add(1)
	return m.err
}

func TestCheckpointServiceTicks(t *testing.T) {
	db := &mockCheckpointer{}
	svc := NewCheckpointService(db, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(60 * time.Millisecond)
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Serve returned %v, want context.Canceled", err)
	}
	if db.calls.Load() < 2 {
		t.Errorf("Checkpoint called %d times, want at least 2", db.calls.Load())
	}
}

func TestCheckpointServiceSurvivesFailures(t *testing.T) {
	db := &mockCheckpointer{err: errors.New("checkpoint conflict")}
	svc := NewCheckpointService(db, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	// Failures are logged, not fatal; Serve keeps ticking until cancel.
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve returned %v, want context.Canceled", err)
	}
	if db.calls.Load() < 2 {
		t.Errorf("Checkpoint called %d times, want retries after failure", db.calls.Load())
	}
}

func TestCheckpointServiceDefaultInterval(t *testing.T) {
	svc := NewCheckpointService(&mockCheckpointer{}, 0)
	if svc.interval != DefaultCheckpointInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultCheckpointInterval)
	}
}
