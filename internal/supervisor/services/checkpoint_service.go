// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package services

import (
	"context"
	"time"

	"github.com/vibescope/vibescope/internal/logging"
)

// Checkpointer flushes the store's write-ahead state to disk.
// Satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// DefaultCheckpointInterval bounds WAL growth under steady ingest while
// keeping checkpoint stalls rare.
const DefaultCheckpointInterval = 5 * time.Minute

// CheckpointService periodically checkpoints the report store so a
// crash loses at most one interval of WAL replay time. Checkpoint
// failures are logged and retried on the next tick rather than
// crashing the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates a checkpoint service. A non-positive
// interval falls back to DefaultCheckpointInterval.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "store-checkpoint",
	}
}

// Serve implements suture.Service.
func (c *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := c.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn().Err(err).Msg("Store checkpoint failed")
				continue
			}
			logging.Debug().Dur("elapsed", time.Since(start)).Msg("Store checkpoint complete")
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (c *CheckpointService) String() string {
	return c.name
}
