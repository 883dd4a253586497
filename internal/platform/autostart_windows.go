//go:build windows

package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

func (service *autostart) Enabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("autostart status: open run key: %w", err)
	}
	defer key.Close()

	_, _, err = key.GetStringValue(service.appName)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return true, nil
}

func (service *autostart) Enable(execPath string) error {
	if err := service.validate(execPath); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("enable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(service.appName, quoteWindowsPath(execPath)+" -tray-only"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *autostart) Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("disable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(service.appName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
