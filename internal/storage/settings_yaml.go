package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"clickclick/internal/core/model"
	"clickclick/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlHotkey struct {
	VK   *int    `yaml:"vk,omitempty"`
	Char *string `yaml:"char,omitempty"`
	Name *string `yaml:"name,omitempty"`
}

type yamlSettings struct {
	MinDelay      float64    `yaml:"min_delay"`
	MaxDelay      float64    `yaml:"max_delay"`
	OffsetRange   int        `yaml:"offset_range"`
	Hotkey        yamlHotkey `yaml:"hotkey"`
	AlwaysOnTop   bool       `yaml:"always_on_top"`
	ShowIndicator bool       `yaml:"show_indicator"`
	ConsoleOutput bool       `yaml:"console_output"`
	LaunchAtLogin bool       `yaml:"launch_at_login"`
	LogLevel      string     `yaml:"log_level"`
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

// LoadSettings reads user preferences from YAML in configDir.
// If the file does not exist, default settings are returned. Fields that are
// missing or hold invalid values keep their defaults.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(SettingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(rawData, &fields); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fields)
	return settings.Normalized(), nil
}

// SaveSettings writes user preferences to YAML in configDir.
func SaveSettings(configDir string, settings preferences.Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalized()
	fileData := yamlSettings{
		MinDelay:      settings.MinDelay,
		MaxDelay:      settings.MaxDelay,
		OffsetRange:   settings.OffsetRange,
		Hotkey:        hotkeyToYaml(settings.Hotkey),
		AlwaysOnTop:   settings.AlwaysOnTop,
		ShowIndicator: settings.ShowIndicator,
		ConsoleOutput: settings.ConsoleOutput,
		LaunchAtLogin: settings.LaunchAtLogin,
		LogLevel:      settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	path := SettingsPath(configDir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fields map[string]yaml.Node) {
	var number float64
	if decodeField(fields, "min_delay", &number) {
		settings.MinDelay = number
	}
	if decodeField(fields, "max_delay", &number) {
		settings.MaxDelay = number
	}

	var offset int
	if decodeField(fields, "offset_range", &offset) && offset >= 0 && offset <= model.MaxOffsetRadius {
		settings.OffsetRange = offset
	}

	var flag bool
	if decodeField(fields, "always_on_top", &flag) {
		settings.AlwaysOnTop = flag
	}
	if decodeField(fields, "show_indicator", &flag) {
		settings.ShowIndicator = flag
	}
	if decodeField(fields, "console_output", &flag) {
		settings.ConsoleOutput = flag
	}
	if decodeField(fields, "launch_at_login", &flag) {
		settings.LaunchAtLogin = flag
	}

	var level string
	if decodeField(fields, "log_level", &level) && strings.TrimSpace(level) != "" {
		settings.LogLevel = strings.ToLower(strings.TrimSpace(level))
	}

	var hotkey yamlHotkey
	if decodeField(fields, "hotkey", &hotkey) {
		if binding := hotkeyFromYaml(hotkey); binding.IsBound() {
			settings.Hotkey = binding
		}
	}
}

// decodeField decodes one field; type mismatches leave target untouched.
func decodeField[T any](fields map[string]yaml.Node, key string, target *T) bool {
	node, ok := fields[key]
	if !ok {
		return false
	}
	var value T
	if err := node.Decode(&value); err != nil {
		return false
	}
	*target = value
	return true
}

func hotkeyFromYaml(hotkey yamlHotkey) model.HotkeyBinding {
	if hotkey.VK != nil && *hotkey.VK > 0 {
		return model.PlatformCodeBinding(*hotkey.VK)
	}
	if hotkey.Char != nil && utf8.RuneCountInString(*hotkey.Char) == 1 {
		char, _ := utf8.DecodeRuneInString(*hotkey.Char)
		if binding := model.CharacterBinding(char); binding.IsBound() {
			return binding
		}
	}
	if hotkey.Name != nil {
		name := strings.TrimPrefix(strings.TrimSpace(*hotkey.Name), "Key.")
		return model.SymbolicNameBinding(strings.ToLower(name))
	}
	return model.HotkeyBinding{}
}

func hotkeyToYaml(binding model.HotkeyBinding) yamlHotkey {
	switch binding.Kind {
	case model.BindingPlatformCode:
		code := binding.Code
		return yamlHotkey{VK: &code}
	case model.BindingCharacter:
		char := string(binding.Char)
		return yamlHotkey{Char: &char}
	case model.BindingSymbolicName:
		name := binding.Name
		return yamlHotkey{Name: &name}
	default:
		return yamlHotkey{}
	}
}
