package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "debug", "production")

	l.Info().Str("component", "test").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["message"])
	require.Equal(t, "test", line["component"])
	require.Contains(t, line, "time")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "chatty", "production")

	require.Equal(t, zerolog.InfoLevel, l.GetLevel())
	l.Debug().Msg("dropped")
	require.Empty(t, buf.String())
}

func TestNew_DevelopmentUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, "info", "development")

	l.Info().Msg("pretty")

	require.Contains(t, buf.String(), "pretty")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
