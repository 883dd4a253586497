package main

import (
	"bytes"
	"testing"
	"time"

	"clickclick/internal/core/model"
	"clickclick/internal/storage"
	"clickclick/internal/ui/preferences"

	"github.com/peterbourgon/ff/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRunFlags(t *testing.T, args ...string) runOptions {
	t.Helper()
	fs, options := newRunFlags()
	require.NoError(t, ff.Parse(fs, args, ff.WithEnvVarPrefix(envPrefix)))
	options.visited(fs)
	return *options
}

func TestUnsetFlagsKeepSettings(t *testing.T) {
	options := parseRunFlags(t)

	settings := preferences.DefaultSettings()
	settings.MinDelay = 2.5
	settings.MaxDelay = 4
	settings.OffsetRange = 9

	got := options.apply(settings)
	assert.Equal(t, 2.5, got.MinDelay)
	assert.Equal(t, 4.0, got.MaxDelay)
	assert.Equal(t, 9, got.OffsetRange)
	assert.False(t, options.trayOnly)
	assert.False(t, options.startActive)
}

func TestFlagsOverrideSettings(t *testing.T) {
	options := parseRunFlags(t, "-min-delay", "0.5", "-max-delay", "0.8", "-offset", "80", "-log-level", "debug", "-tray-only", "-start-active")

	got := options.apply(preferences.DefaultSettings())
	assert.Equal(t, 0.5, got.MinDelay)
	assert.Equal(t, 0.8, got.MaxDelay)
	assert.Equal(t, model.MaxOffsetRadius, got.OffsetRange)
	assert.Equal(t, "debug", got.LogLevel)
	assert.True(t, options.trayOnly)
	assert.True(t, options.startActive)
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("CLICKCLICK_OFFSET", "7")
	t.Setenv("CLICKCLICK_MAX_DELAY", "6")

	got := parseRunFlags(t).apply(preferences.DefaultSettings())
	assert.Equal(t, 7, got.OffsetRange)
	assert.Equal(t, 6.0, got.MaxDelay)
	assert.Equal(t, 1.0, got.MinDelay)
}

func TestFlagOverridesAreNormalized(t *testing.T) {
	options := parseRunFlags(t, "-min-delay", "5", "-max-delay", "2")

	got := options.apply(preferences.DefaultSettings())
	assert.Equal(t, 2.0, got.MinDelay)
	assert.Equal(t, 5.0, got.MaxDelay)
}

func TestPrintHistory(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	sessions := []model.Session{{
		ID:       "a",
		Started:  started,
		Ended:    started.Add(90 * time.Second),
		Position: model.Point{X: 100, Y: 200},
		Clicks:   42,
		Failures: 1,
	}}
	totals := storage.Totals{Sessions: 1, Clicks: 42, Failures: 1, Active: 90 * time.Second}

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, sessions, totals))

	text := out.String()
	assert.Contains(t, text, "STARTED")
	assert.Contains(t, text, "2026-01-02 03:04:05")
	assert.Contains(t, text, "1m30s")
	assert.Contains(t, text, "(100, 200)")
	assert.Contains(t, text, "1 sessions, 42 clicks, 1 failed, 1m30s active")
}
