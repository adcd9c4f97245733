// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/vibescope/vibescope/internal/logging"
	"github.com/vibescope/vibescope/internal/models"
)

// reportColumns is the canonical column list shared by every report query
// so scanReport stays in lockstep with the SELECTs.
const reportColumns = `id, timestamp, model, environment, environment_version, mode,
	issue_category, issue_tags, severity, repro, vibe, details,
	user_agent, ip_address, location, source, latency_ms, http_status, error_code`

// InsertReport appends one report row. Reports are immutable: there is no
// update path and no dedup, every submission is a new row.
func (db *DB) InsertReport(ctx context.Context, r *models.Report) error {
	tags, err := json.Marshal(r.IssueTags)
	if err != nil {
		return fmt.Errorf("failed to encode issue_tags: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Timestamp.UTC(), r.Model, r.Environment, r.EnvironmentVersion, r.Mode,
		r.IssueCategory, string(tags), string(r.Severity), string(r.Repro), string(r.Vibe), r.Details,
		r.UserAgent, r.IPAddress, r.Location, r.Source, r.LatencyMS, r.HTTPStatus, r.ErrorCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ReportsInRange returns all reports for model with timestamp in [from, to).
// The read is a single statement, so the result is one MVCC snapshot.
func (db *DB) ReportsInRange(ctx context.Context, model string, from, to time.Time) ([]models.Report, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE model = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC`,
		model, from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports in range: %w", err)
	}
	defer closeRows(rows)

	return scanReports(rows)
}

// RecentReports returns the newest reports for model, timestamp descending.
func (db *DB) RecentReports(ctx context.Context, model string, limit int) ([]models.Report, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE model = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		model, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reports: %w", err)
	}
	defer closeRows(rows)

	return scanReports(rows)
}

// ListModels returns known model names by descending total report count.
func (db *DB) ListModels(ctx context.Context, limit int) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT model
		FROM reports
		GROUP BY model
		ORDER BY COUNT(*) DESC, model ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer closeRows(rows)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan model name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountReports returns the total number of stored reports.
func (db *DB) CountReports(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

func scanReports(rows *sql.Rows) ([]models.Report, error) {
	var out []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReport(rows *sql.Rows) (models.Report, error) {
	var (
		r        models.Report
		tags     string
		severity string
		repro    string
		vibe     string
	)
	err := rows.Scan(
		&r.ID, &r.Timestamp, &r.Model, &r.Environment, &r.EnvironmentVersion, &r.Mode,
		&r.IssueCategory, &tags, &severity, &repro, &vibe, &r.Details,
		&r.UserAgent, &r.IPAddress, &r.Location, &r.Source, &r.LatencyMS, &r.HTTPStatus, &r.ErrorCode,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan report: %w", err)
	}

	r.Timestamp = r.Timestamp.UTC()
	r.Severity = models.Severity(severity)
	r.Repro = models.Repro(repro)
	r.Vibe = models.Vibe(vibe)
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &r.IssueTags); err != nil {
			return r, fmt.Errorf("failed to decode issue_tags: %w", err)
		}
	}
	return r, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Debug().Err(err).Msg("Failed to close result rows")
	}
}
