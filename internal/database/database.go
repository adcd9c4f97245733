// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/vibescope/vibescope/internal/config"
	"github.com/vibescope/vibescope/internal/logging"
)

// DB wraps the DuckDB connection and provides report persistence and the
// range queries the view layer reads from. Each query runs as a single SQL
// statement, so DuckDB's MVCC gives every view a consistent snapshot.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens (or creates) the DuckDB database file and initializes the
// schema. Use ":memory:" for an in-memory store; config validation
// rejects an empty path before it reaches here.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure parent directory exists for database file.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	if cfg.Path != "" && cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage but may change
	// result order; every reader here orders explicitly.
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments. No extensions are required by this schema.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("Database opened")

	return db, nil
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close checkpoints the WAL and closes the connection. The checkpoint is
// best effort; a failure is logged rather than propagated so shutdown can
// proceed.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}

	return db.conn.Close()
}

// Checkpoint forces a WAL flush to the main database file.
func (db *DB) Checkpoint(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	return err
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// createTables creates the reports table and its query indexes.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		model VARCHAR NOT NULL,
		environment VARCHAR NOT NULL,
		environment_version VARCHAR DEFAULT '',
		mode VARCHAR DEFAULT '',
		issue_category VARCHAR NOT NULL,
		issue_tags VARCHAR DEFAULT '[]',
		severity VARCHAR NOT NULL,
		repro VARCHAR NOT NULL,
		vibe VARCHAR NOT NULL,
		details VARCHAR DEFAULT '',
		user_agent VARCHAR DEFAULT '',
		ip_address VARCHAR DEFAULT '',
		location VARCHAR DEFAULT '',
		source VARCHAR DEFAULT 'web',
		latency_ms INTEGER DEFAULT 0,
		http_status INTEGER DEFAULT 0,
		error_code VARCHAR DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_reports_model_ts ON reports(model, timestamp);
	CREATE INDEX IF NOT EXISTS idx_reports_ts ON reports(timestamp);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create reports table: %w", err)
	}
	return nil
}

// closeQuietly closes a connection where the caller is already returning a
// more useful error.
func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Debug().Err(err).Msg("Failed to close database connection")
	}
}
