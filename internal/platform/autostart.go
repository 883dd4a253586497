package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Autostart registers the application to launch at login.
type Autostart interface {
	Enabled() (bool, error)
	Enable(execPath string) error
	Disable() error
}

type autostart struct {
	appName string
}

// NewAutostart returns the login-item helper for this platform.
func NewAutostart(appName string) Autostart {
	return &autostart{appName: strings.TrimSpace(appName)}
}

// ConfigDir returns the per-user configuration directory for appName,
// creating it when missing.
func ConfigDir(appName string) (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, appSlug(appName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

func appSlug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "clickclick"
	}
	return strings.ReplaceAll(name, " ", "-")
}

func (service *autostart) validate(execPath string) error {
	if service.appName == "" {
		return fmt.Errorf("app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("exec path is empty")
	}
	return nil
}
