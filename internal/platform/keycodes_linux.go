//go:build linux

package platform

// x11VirtualKeys maps X11 keysyms without a direct arithmetic relation to
// virtual-key codes.
var x11VirtualKeys = map[uint16]int{
	0xff08: vkBack,
	0xff09: vkTab,
	0xff0d: vkReturn,
	0xff13: vkPause,
	0xff14: vkScroll,
	0xff1b: vkEscape,
	0xff50: vkHome,
	0xff51: vkLeft,
	0xff52: vkUp,
	0xff53: vkRight,
	0xff54: vkDown,
	0xff55: vkPrior,
	0xff56: vkNext,
	0xff57: vkEnd,
	0xff63: vkInsert,
	0xffff: vkDelete,
	0xffaa: vkMultiply,
	0xffab: vkAdd,
	0xffad: vkSubtract,
	0xffae: vkDecimal,
	0xffaf: vkDivide,
	// Keypad with Num Lock off.
	0xff9e: vkNumpad0,
	0xff9c: vkNumpad0 + 1,
	0xff99: vkNumpad0 + 2,
	0xff9b: vkNumpad0 + 3,
	0xff96: vkNumpad0 + 4,
	0xff9d: vkNumpad0 + 5,
	0xff98: vkNumpad0 + 6,
	0xff95: vkNumpad0 + 7,
	0xff97: vkNumpad0 + 8,
	0xff9a: vkNumpad0 + 9,
}

// virtualKey translates an X11 keysym to a virtual-key code.
func virtualKey(rawcode uint16) (int, bool) {
	switch {
	case rawcode >= 0xffb0 && rawcode <= 0xffb9:
		return vkNumpad0 + int(rawcode-0xffb0), true
	case rawcode >= 0xffbe && rawcode <= 0xffd5:
		return vkF1 + int(rawcode-0xffbe), true
	case rawcode >= 'a' && rawcode <= 'z':
		return int(rawcode - 'a' + 'A'), true
	case rawcode >= 'A' && rawcode <= 'Z', rawcode >= '0' && rawcode <= '9', rawcode == ' ':
		return int(rawcode), true
	}
	vk, ok := x11VirtualKeys[rawcode]
	return vk, ok
}
