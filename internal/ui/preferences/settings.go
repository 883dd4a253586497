package preferences

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"clickclick/internal/core/model"
)

// Delay bounds offered by the settings window, in seconds.
const (
	MinDelaySeconds = 0.1
	MaxDelaySeconds = 10.0
)

// Settings defines editable user preferences.
type Settings struct {
	MinDelay    float64
	MaxDelay    float64
	OffsetRange int
	Hotkey      model.HotkeyBinding

	AlwaysOnTop   bool
	ShowIndicator bool
	ConsoleOutput bool
	LaunchAtLogin bool
	LogLevel      string
}

// DefaultSettings returns default settings for ClickClick.
func DefaultSettings() Settings {
	return Settings{
		MinDelay:      1.0,
		MaxDelay:      3.0,
		OffsetRange:   3,
		Hotkey:        model.DefaultHotkey(),
		AlwaysOnTop:   false,
		ShowIndicator: true,
		ConsoleOutput: true,
		LaunchAtLogin: false,
		LogLevel:      "info",
	}
}

// Normalized returns a copy with delays rounded to 0.1s and clamped into
// [MinDelaySeconds, MaxDelaySeconds], ordered, and the offset clamped.
func (settings Settings) Normalized() Settings {
	settings.MinDelay = ClampDelaySeconds(settings.MinDelay)
	settings.MaxDelay = ClampDelaySeconds(settings.MaxDelay)
	if settings.MinDelay > settings.MaxDelay {
		settings.MinDelay, settings.MaxDelay = settings.MaxDelay, settings.MinDelay
	}
	settings.OffsetRange = model.ClampOffset(settings.OffsetRange)
	if !settings.Hotkey.IsBound() {
		settings.Hotkey = model.DefaultHotkey()
	}
	return settings
}

// AutomationConfig converts settings to the core configuration.
func (settings Settings) AutomationConfig() model.AutomationConfig {
	normalized := settings.Normalized()
	return model.AutomationConfig{
		MinDelay:     secondsToDuration(normalized.MinDelay),
		MaxDelay:     secondsToDuration(normalized.MaxDelay),
		OffsetRadius: normalized.OffsetRange,
		Hotkey:       normalized.Hotkey,
	}
}

// ClampDelaySeconds rounds to one decimal and clamps into the supported
// range. NaN becomes the minimum.
func ClampDelaySeconds(seconds float64) float64 {
	if math.IsNaN(seconds) {
		return MinDelaySeconds
	}
	rounded := math.Round(seconds*10) / 10
	return math.Max(MinDelaySeconds, math.Min(MaxDelaySeconds, rounded))
}

// ValidateDelayRange checks user-entered delay bounds and returns them
// clamped, or an error message suitable for display.
func ValidateDelayRange(minText, maxText string) (float64, float64, error) {
	minValue, err := parseSeconds(minText)
	if err != nil {
		return 0, 0, fmt.Errorf("min delay: %w", err)
	}
	maxValue, err := parseSeconds(maxText)
	if err != nil {
		return 0, 0, fmt.Errorf("max delay: %w", err)
	}
	if minValue > maxValue {
		return 0, 0, fmt.Errorf("min delay must not exceed max delay")
	}
	return ClampDelaySeconds(minValue), ClampDelaySeconds(maxValue), nil
}

func parseSeconds(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if parsed < MinDelaySeconds || parsed > MaxDelaySeconds {
		return 0, fmt.Errorf("must be between %.1f and %.1f seconds", MinDelaySeconds, MaxDelaySeconds)
	}
	return parsed, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
