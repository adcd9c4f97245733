// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

// Package api provides the HTTP surface of Vibescope: report ingest,
// dashboard view endpoints, health probes, and the admin seed trigger.
//
// Routing uses Chi with production middleware from the Chi ecosystem
// (go-chi/cors, go-chi/httprate). All responses share the APIResponse
// envelope from the models package. View endpoints are cached with a
// short TTL; ingest is rate limited separately from reads.
package api
