// Vibescope - AI Model Vibe Monitoring and Worseness Analytics
// Copyright 2026 Vibescope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vibescope/vibescope

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitAndLog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf, Timestamp: true})

	Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("missing level field: %s", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("missing structured field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("missing message: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})

	Debug().Msg("too quiet")
	Info().Msg("still too quiet")
	Warn().Msg("loud enough")

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("below-threshold entries emitted: %s", out)
	}
	if !strings.Contains(out, "loud enough") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("with id")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("request_id not propagated: %s", buf.String())
	}

	buf.Reset()
	Ctx(context.Background()).Info().Msg("without id")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("request_id emitted without context value: %s", buf.String())
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Error("consecutive request IDs collide")
	}
	if len(a) != 36 {
		t.Errorf("request ID %q is not a UUID", a)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	seedLogger := WithComponent("seed")
	seedLogger.Info().Msg("seeding")

	if !strings.Contains(buf.String(), `"component":"seed"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestSlogAdapterWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	slogger := NewSlogLogger()
	slogger.Info("supervisor event", "service", "http-server")

	out := buf.String()
	if !strings.Contains(out, `"message":"supervisor event"`) {
		t.Errorf("slog message missing: %s", out)
	}
	if !strings.Contains(out, `"service":"http-server"`) {
		t.Errorf("slog attr missing: %s", out)
	}
}
