package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedview/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDispatcherHandler_RoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := slog.New(NewLevelDispatcherHandler(&out, &errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("feed loaded", slog.String("component", "feed-loader"), slog.Int("items_found", 3))
	log.Error("fetch failed", slog.Any("error", errors.New("timeout")))

	assert.Contains(t, out.String(), "INFO [feed-loader]: feed loaded | items_found=3")
	assert.NotContains(t, out.String(), "fetch failed")
	assert.Contains(t, errOut.String(), `ERROR: fetch failed | error="timeout"`)
}

func TestReadableHandler_WithAttrsKeepsContext(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, nil)).With(
		slog.String("component", "viewer"),
		slog.String("op", "usecase.Handle"),
	)

	log.Info("event", slog.String("event", "navigate"))

	assert.Contains(t, out.String(), "INFO [viewer] (usecase.Handle): event | event=navigate")
}

func TestReadableHandler_GroupAndLevel(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn})).WithGroup("page")

	log.Info("hidden")
	log.Warn("shown", slog.Int("current", 2))

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "WARN: shown | page.current=2")
}

func TestReadableHandler_ShortensURL(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, nil))
	long := "https://example.com/" + strings.Repeat("a", 60)

	log.Info("fetch", slog.String("url", long))

	assert.Contains(t, out.String(), "url=https://example.com/...")
}

func TestNew_WritesToFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggerConfig{
		Level:     "debug",
		File:      filepath.Join(dir, "feedview.log"),
		ErrorFile: filepath.Join(dir, "feedview_error.log"),
	}

	log, err := New(cfg)
	require.NoError(t, err)
	log.Debug("debug line")
	log.Error("error line")

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
	assert.Contains(t, string(data), "logger_test.go")
	errData, err := os.ReadFile(cfg.ErrorFile)
	require.NoError(t, err)
	assert.Contains(t, string(errData), "error line")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}
