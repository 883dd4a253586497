// Package hotkey matches global key events against the configured toggle
// binding and dispatches the toggle callback.
package hotkey

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"clickclick/internal/core/model"
)

// Matches reports whether event triggers binding. Platform codes are compared
// first, then printable characters case-insensitively, then symbolic names.
// Partial events never match a binding they cannot satisfy.
func Matches(event model.KeyEvent, binding model.HotkeyBinding) bool {
	if !binding.IsBound() {
		return false
	}
	switch binding.Kind {
	case model.BindingPlatformCode:
		return event.HasCode && event.Code == binding.Code
	case model.BindingCharacter:
		char, ok := eventChar(event)
		if !ok {
			return false
		}
		return unicode.ToLower(char) == unicode.ToLower(binding.Char)
	case model.BindingSymbolicName:
		name := strings.TrimSpace(event.Name)
		return name != "" && strings.EqualFold(name, binding.Name)
	default:
		return false
	}
}

// eventChar extracts the printable character of an event, falling back to a
// one-rune key name.
func eventChar(event model.KeyEvent) (rune, bool) {
	if event.Char != 0 {
		if event.Char == utf8.RuneError || !unicode.IsPrint(event.Char) {
			return 0, false
		}
		return event.Char, true
	}
	name := strings.TrimSpace(event.Name)
	if utf8.RuneCountInString(name) != 1 {
		return 0, false
	}
	char, _ := utf8.DecodeRuneInString(name)
	if char == utf8.RuneError || !unicode.IsPrint(char) {
		return 0, false
	}
	return char, true
}
