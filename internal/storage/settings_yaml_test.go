package storage

import (
	"os"
	"testing"

	"clickclick/internal/core/model"
	"clickclick/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	dir := t.TempDir()
	want := preferences.DefaultSettings()
	want.MinDelay = 0.5
	want.MaxDelay = 2.5
	want.OffsetRange = 12
	want.Hotkey = model.SymbolicNameBinding("f8")
	want.AlwaysOnTop = true
	want.ShowIndicator = false
	want.LaunchAtLogin = true
	want.LogLevel = "debug"

	require.NoError(t, SaveSettings(dir, want))
	got, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(SettingsPath(dir) + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSettingsIgnoresInvalidFields(t *testing.T) {
	dir := t.TempDir()
	document := `
min_delay: "fast"
max_delay: 42
offset_range: 500
show_indicator: maybe
always_on_top: true
hotkey:
  char: "ab"
  name: Key.f9
`
	require.NoError(t, os.WriteFile(SettingsPath(dir), []byte(document), 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.MinDelay, settings.MinDelay)
	assert.Equal(t, preferences.MaxDelaySeconds, settings.MaxDelay)
	assert.Equal(t, defaults.OffsetRange, settings.OffsetRange)
	assert.Equal(t, defaults.ShowIndicator, settings.ShowIndicator)
	assert.True(t, settings.AlwaysOnTop)
	assert.Equal(t, model.SymbolicNameBinding("f9"), settings.Hotkey)
}

func TestLoadSettingsPrefersVirtualKey(t *testing.T) {
	dir := t.TempDir()
	document := "hotkey:\n  vk: 119\n  char: q\n"
	require.NoError(t, os.WriteFile(SettingsPath(dir), []byte(document), 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, model.PlatformCodeBinding(119), settings.Hotkey)
}

func TestLoadSettingsRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(SettingsPath(dir), []byte("- not\n- a map\n"), 0o644))

	settings, err := LoadSettings(dir)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
