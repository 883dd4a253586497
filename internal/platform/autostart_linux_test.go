//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartDesktopEntry(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	service := NewAutostart("ClickClick")
	enabled, err := service.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.Enable("/opt/click click/clickclick"))
	enabled, err = service.Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	content, err := os.ReadFile(filepath.Join(configHome, "autostart", "clickclick.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `Exec="/opt/click click/clickclick" -tray-only`)
	assert.Contains(t, string(content), "Name=ClickClick")

	require.NoError(t, service.Disable())
	require.NoError(t, service.Disable())
	enabled, err = service.Enabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	assert.Error(t, service.Enable(""))
}

func TestConfigDirCreatesAppFolder(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir, err := ConfigDir("ClickClick")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configHome, "clickclick"), dir)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
