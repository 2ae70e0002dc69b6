package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInit_JSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "resume-matcher", Writer: &buf})

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))

	C(ctx).Info().Str("resume_id", "r1").Msg("matched")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "matched", line["message"])
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "resume-matcher", line["service"])
	assert.Equal(t, "r1", line["resume_id"])
}

func TestNamed_AddsComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Writer: &buf})

	Named("server").Warn().Msg("slow")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "server", line["component"])
	assert.Equal(t, "warn", line["level"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "error", Format: "json", Writer: &buf})

	Get().Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	assert.Same(t, Get(), C(context.Background()))
	assert.Empty(t, RequestID(WithRequestID(context.Background(), "")))
}
