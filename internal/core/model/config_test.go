package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecondsToDelayClampsAndRejects(t *testing.T) {
	delay, ok := SecondsToDelay(1.5)
	assert.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, delay)

	delay, ok = SecondsToDelay(0)
	assert.True(t, ok)
	assert.Equal(t, MinClickDelay, delay)

	delay, ok = SecondsToDelay(1e9)
	assert.True(t, ok)
	assert.Equal(t, MaxClickDelay, delay)

	_, ok = SecondsToDelay(math.NaN())
	assert.False(t, ok)
	_, ok = SecondsToDelay(math.Inf(1))
	assert.False(t, ok)
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, ClampOffset(-4))
	assert.Equal(t, 7, ClampOffset(7))
	assert.Equal(t, MaxOffsetRadius, ClampOffset(MaxOffsetRadius+1))
}

func TestBindingFromEventPrefersCode(t *testing.T) {
	assert.Equal(t, PlatformCodeBinding(101), BindingFromEvent(KeyEvent{Code: 101, HasCode: true, Char: 'x', Name: "x"}))
	assert.Equal(t, CharacterBinding('x'), BindingFromEvent(KeyEvent{Char: 'x', Name: "x"}))
	assert.Equal(t, SymbolicNameBinding("f8"), BindingFromEvent(KeyEvent{Name: " f8 "}))
	assert.False(t, BindingFromEvent(KeyEvent{}).IsBound())
}

func TestHotkeyBindingString(t *testing.T) {
	assert.Equal(t, "vk=101", DefaultHotkey().String())
	assert.Equal(t, "char='q'", CharacterBinding('q').String())
	assert.Equal(t, "f8", SymbolicNameBinding("f8").String())
	assert.Equal(t, "(unset)", HotkeyBinding{}.String())
	assert.Equal(t, "(unset)", HotkeyBinding{Kind: BindingPlatformCode}.String())
}
