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

func TestWithComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Out: &buf})

	log := l.WithComponent("export")
	log.Info().Str("number", "INV/001").Msg("pdf generado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "export", entry["component"])
	assert.Equal(t, "INV/001", entry["number"])
	assert.Equal(t, "info", entry["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "error", Out: &buf})
	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len())
}

func TestScoped_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Env: "production", Out: &buf}).WithComponent("export")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))

	log := Scoped(ctx, base)
	log.Info().Msg("ok")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "export", entry["component"])
}

func TestScoped_WithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Env: "production", Out: &buf}).Zerolog()

	ctx := ContextWithRequestID(context.Background(), "")
	assert.Empty(t, RequestID(ctx))

	log := Scoped(ctx, base)
	log.Info().Msg("ok")
	assert.NotContains(t, buf.String(), "request_id")
}
