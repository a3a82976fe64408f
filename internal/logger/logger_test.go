package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, slog.LevelInfo))

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.With("component", "ipa").WithGroup("symbol").Warn("skipping", "rune", "§")
	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "skipping")
	assert.Contains(t, out, "component"+reset+"=ipa")
	assert.Contains(t, out, "symbol.rune"+reset+"=§")
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, "json", slog.LevelDebug))
	log.Debug("converted", "word", "cat")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, "cat", entry["word"])
}

func TestNewIsShared(t *testing.T) {
	assert.Same(t, New(), New())
	assert.Same(t, New(), slog.Default())
}
