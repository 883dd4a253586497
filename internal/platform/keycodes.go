package platform

import (
	"fmt"
	"strings"

	"clickclick/internal/core/model"
)

// Windows virtual-key codes used as the portable key code space.
const (
	vkBack     = 0x08
	vkTab      = 0x09
	vkReturn   = 0x0D
	vkPause    = 0x13
	vkEscape   = 0x1B
	vkSpace    = 0x20
	vkPrior    = 0x21
	vkNext     = 0x22
	vkEnd      = 0x23
	vkHome     = 0x24
	vkLeft     = 0x25
	vkUp       = 0x26
	vkRight    = 0x27
	vkDown     = 0x28
	vkInsert   = 0x2D
	vkDelete   = 0x2E
	vkNumpad0  = 0x60
	vkMultiply = 0x6A
	vkAdd      = 0x6B
	vkSubtract = 0x6D
	vkDecimal  = 0x6E
	vkDivide   = 0x6F
	vkF1       = 0x70
	vkF24      = 0x87
	vkScroll   = 0x91
)

var virtualKeyNames = map[int]string{
	vkBack:     "backspace",
	vkTab:      "tab",
	vkReturn:   "enter",
	vkPause:    "pause",
	vkEscape:   "esc",
	vkSpace:    "space",
	vkPrior:    "page_up",
	vkNext:     "page_down",
	vkEnd:      "end",
	vkHome:     "home",
	vkLeft:     "left",
	vkUp:       "up",
	vkRight:    "right",
	vkDown:     "down",
	vkInsert:   "insert",
	vkDelete:   "delete",
	vkMultiply: "num_multiply",
	vkAdd:      "num_add",
	vkSubtract: "num_subtract",
	vkDecimal:  "num_decimal",
	vkDivide:   "num_divide",
	vkScroll:   "scroll_lock",
}

// virtualKeyName returns the symbolic name of a virtual-key code, or "" when
// the key has none.
func virtualKeyName(vk int) string {
	switch {
	case vk >= vkNumpad0 && vk <= vkNumpad0+9:
		return fmt.Sprintf("num_%d", vk-vkNumpad0)
	case vk >= vkF1 && vk <= vkF24:
		return fmt.Sprintf("f%d", vk-vkF1+1)
	case vk >= '0' && vk <= '9', vk >= 'A' && vk <= 'Z':
		return strings.ToLower(string(rune(vk)))
	}
	return virtualKeyNames[vk]
}

// virtualKeyChar returns the lower-case character of letter and digit keys.
func virtualKeyChar(vk int) rune {
	switch {
	case vk >= '0' && vk <= '9':
		return rune(vk)
	case vk >= 'A' && vk <= 'Z':
		return rune(vk - 'A' + 'a')
	case vk == vkSpace:
		return ' '
	}
	return 0
}

// DescribeHotkey renders a binding for display, naming well-known key codes.
func DescribeHotkey(binding model.HotkeyBinding) string {
	if !binding.IsBound() {
		return "(unset)"
	}
	switch binding.Kind {
	case model.BindingPlatformCode:
		if name := virtualKeyName(binding.Code); name != "" {
			return fmt.Sprintf("%s (vk %d)", displayName(name), binding.Code)
		}
		return fmt.Sprintf("vk %d", binding.Code)
	case model.BindingCharacter:
		if binding.Char == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(binding.Char))
	default:
		return displayName(binding.Name)
	}
}

func displayName(name string) string {
	if strings.HasPrefix(name, "num_") {
		return "Numpad " + strings.TrimPrefix(name, "num_")
	}
	if len(name) == 1 || isFunctionKey(name) {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name[:1]) + strings.ReplaceAll(name[1:], "_", " ")
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || len(name) > 3 || name[0] != 'f' {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
