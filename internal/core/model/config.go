package model

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

const (
	// MinClickDelay is the smallest delay the scheduler accepts between clicks.
	MinClickDelay = 10 * time.Millisecond

	// MaxClickDelay caps the delay between clicks.
	MaxClickDelay = 10 * time.Second

	// MaxOffsetRadius caps the jitter radius in pixels.
	MaxOffsetRadius = 50

	// NumpadFiveCode is the Windows virtual-key code of Numpad 5, the default toggle.
	NumpadFiveCode = 101
)

// Point is a screen coordinate in pixels.
type Point struct {
	X int
	Y int
}

func (point Point) String() string {
	return fmt.Sprintf("(%d, %d)", point.X, point.Y)
}

// Offset returns the point moved by dx, dy.
func (point Point) Offset(dx, dy int) Point {
	return Point{X: point.X + dx, Y: point.Y + dy}
}

// BindingKind tags which field of a HotkeyBinding is populated.
type BindingKind int

const (
	BindingNone BindingKind = iota
	BindingPlatformCode
	BindingCharacter
	BindingSymbolicName
)

// HotkeyBinding identifies the toggle key. At most one of Code, Char and
// Name is meaningful, selected by Kind.
type HotkeyBinding struct {
	Kind BindingKind
	Code int
	Char rune
	Name string
}

// PlatformCodeBinding binds a platform key code.
func PlatformCodeBinding(code int) HotkeyBinding {
	return HotkeyBinding{Kind: BindingPlatformCode, Code: code}
}

// CharacterBinding binds a printable character.
func CharacterBinding(char rune) HotkeyBinding {
	return HotkeyBinding{Kind: BindingCharacter, Char: char}
}

// SymbolicNameBinding binds a named key such as "f8".
func SymbolicNameBinding(name string) HotkeyBinding {
	return HotkeyBinding{Kind: BindingSymbolicName, Name: strings.TrimSpace(name)}
}

// DefaultHotkey returns the Numpad 5 binding.
func DefaultHotkey() HotkeyBinding {
	return PlatformCodeBinding(NumpadFiveCode)
}

// IsBound reports whether the binding can match anything.
func (binding HotkeyBinding) IsBound() bool {
	switch binding.Kind {
	case BindingPlatformCode:
		return binding.Code > 0
	case BindingCharacter:
		return binding.Char != 0 && unicode.IsPrint(binding.Char)
	case BindingSymbolicName:
		return binding.Name != ""
	default:
		return false
	}
}

func (binding HotkeyBinding) String() string {
	if !binding.IsBound() {
		return "(unset)"
	}
	switch binding.Kind {
	case BindingPlatformCode:
		return fmt.Sprintf("vk=%d", binding.Code)
	case BindingCharacter:
		return fmt.Sprintf("char=%q", binding.Char)
	default:
		return binding.Name
	}
}

// KeyEvent is a global key-down event as delivered by the keyboard primitive.
// Fields the platform could not supply are left zero.
type KeyEvent struct {
	Code    int
	HasCode bool
	Char    rune
	Name    string
}

// BindingFromEvent derives the most specific binding an event can be matched by.
func BindingFromEvent(event KeyEvent) HotkeyBinding {
	switch {
	case event.HasCode && event.Code > 0:
		return PlatformCodeBinding(event.Code)
	case event.Char != 0 && unicode.IsPrint(event.Char):
		return CharacterBinding(event.Char)
	case strings.TrimSpace(event.Name) != "":
		return SymbolicNameBinding(event.Name)
	default:
		return HotkeyBinding{}
	}
}

// AutomationConfig contains the runtime settings the core consumes.
type AutomationConfig struct {
	MinDelay     time.Duration
	MaxDelay     time.Duration
	OffsetRadius int
	Hotkey       HotkeyBinding
}

// ClampDelay coerces a delay into [MinClickDelay, MaxClickDelay].
func ClampDelay(delay time.Duration) time.Duration {
	if delay < MinClickDelay {
		return MinClickDelay
	}
	if delay > MaxClickDelay {
		return MaxClickDelay
	}
	return delay
}

// SecondsToDelay converts a seconds value to a clamped delay. NaN and
// infinities are reported as invalid.
func SecondsToDelay(seconds float64) (time.Duration, bool) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}
	if seconds > MaxClickDelay.Seconds() {
		return MaxClickDelay, true
	}
	return ClampDelay(time.Duration(seconds * float64(time.Second))), true
}

// ClampOffset coerces a jitter radius into [0, MaxOffsetRadius].
func ClampOffset(radius int) int {
	if radius < 0 {
		return 0
	}
	if radius > MaxOffsetRadius {
		return MaxOffsetRadius
	}
	return radius
}
