//go:build linux

package platform

import (
	"testing"

	"clickclick/internal/core/model"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
)

func TestX11KeysymsMapToVirtualKeys(t *testing.T) {
	cases := map[uint16]int{
		0xffb5: model.NumpadFiveCode,
		0xff9d: model.NumpadFiveCode,
		0xffbe: vkF1,
		0xffc5: vkF1 + 7,
		'a':    'A',
		'Z':    'Z',
		'4':    '4',
		0xff1b: vkEscape,
	}
	for keysym, want := range cases {
		got, ok := virtualKey(keysym)
		assert.True(t, ok, "keysym %#x", keysym)
		assert.Equal(t, want, got, "keysym %#x", keysym)
	}

	_, ok := virtualKey(0xfe03)
	assert.False(t, ok)
}

func TestKeyEventFromHook(t *testing.T) {
	event := keyEventFromHook(hook.Event{Kind: hook.KeyHold, Rawcode: 0xffb5, Keychar: charUndefined})
	assert.Equal(t, model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true, Name: "num_5"}, event)

	event = keyEventFromHook(hook.Event{Kind: hook.KeyHold, Rawcode: 'q', Keychar: charUndefined})
	assert.Equal(t, model.KeyEvent{Code: 'Q', HasCode: true, Char: 'q', Name: "q"}, event)

	event = keyEventFromHook(hook.Event{Kind: hook.KeyHold, Rawcode: 0xfe03, Keychar: 'x'})
	assert.Equal(t, model.KeyEvent{Char: 'x'}, event)
}
