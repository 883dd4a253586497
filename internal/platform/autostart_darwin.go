//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *autostart) Enabled() (bool, error) {
	path, err := service.plistPath()
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
	path, err := service.plistPath()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}
	content := buildLaunchAgentPlist(launchAgentLabel(service.appName), execPath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return nil
}

func (service *autostart) Disable() error {
	path, err := service.plistPath()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

func (service *autostart) plistPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	label := launchAgentLabel(service.appName)
	return filepath.Join(homeDir, "Library", "LaunchAgents", label+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "io.clickclick." + appSlug(appName)
}

func buildLaunchAgentPlist(label, execPath string) string {
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>-tray-only</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label),
		xmlEscape(execPath),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
