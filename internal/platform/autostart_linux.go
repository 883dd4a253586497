//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *autostart) Enabled() (bool, error) {
	path, err := service.desktopEntryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return true, nil
}

func (service *autostart) Enable(execPath string) error {
	if err := service.validate(execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	path, err := service.desktopEntryPath()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildDesktopEntry(service.appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *autostart) Disable() error {
	path, err := service.desktopEntryPath()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *autostart) desktopEntryPath() (string, error) {
	configDir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", appSlug(service.appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Hotkey-toggled auto clicker
Exec=%s -tray-only
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine,
	)
}
