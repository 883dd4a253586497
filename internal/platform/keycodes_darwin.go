//go:build darwin

package platform

// macVirtualKeys maps macOS kVK_* key codes to virtual-key codes.
var macVirtualKeys = map[uint16]int{
	0x00: 'A', 0x0B: 'B', 0x08: 'C', 0x02: 'D', 0x0E: 'E', 0x03: 'F',
	0x05: 'G', 0x04: 'H', 0x22: 'I', 0x26: 'J', 0x28: 'K', 0x25: 'L',
	0x2E: 'M', 0x2D: 'N', 0x1F: 'O', 0x23: 'P', 0x0C: 'Q', 0x0F: 'R',
	0x01: 'S', 0x11: 'T', 0x20: 'U', 0x09: 'V', 0x0D: 'W', 0x07: 'X',
	0x10: 'Y', 0x06: 'Z',
	0x1D: '0', 0x12: '1', 0x13: '2', 0x14: '3', 0x15: '4',
	0x17: '5', 0x16: '6', 0x1A: '7', 0x1C: '8', 0x19: '9',
	0x52: vkNumpad0, 0x53: vkNumpad0 + 1, 0x54: vkNumpad0 + 2,
	0x55: vkNumpad0 + 3, 0x56: vkNumpad0 + 4, 0x57: vkNumpad0 + 5,
	0x58: vkNumpad0 + 6, 0x59: vkNumpad0 + 7, 0x5B: vkNumpad0 + 8,
	0x5C: vkNumpad0 + 9,
	0x43: vkMultiply, 0x45: vkAdd, 0x4E: vkSubtract, 0x41: vkDecimal, 0x4B: vkDivide,
	0x7A: vkF1, 0x78: vkF1 + 1, 0x63: vkF1 + 2, 0x76: vkF1 + 3,
	0x60: vkF1 + 4, 0x61: vkF1 + 5, 0x62: vkF1 + 6, 0x64: vkF1 + 7,
	0x65: vkF1 + 8, 0x6D: vkF1 + 9, 0x67: vkF1 + 10, 0x6F: vkF1 + 11,
	0x31: vkSpace, 0x35: vkEscape, 0x24: vkReturn, 0x30: vkTab, 0x33: vkBack,
	0x73: vkHome, 0x77: vkEnd, 0x74: vkPrior, 0x79: vkNext, 0x75: vkDelete,
	0x7B: vkLeft, 0x7C: vkRight, 0x7D: vkDown, 0x7E: vkUp,
}

// virtualKey translates a macOS key code to a virtual-key code.
func virtualKey(rawcode uint16) (int, bool) {
	vk, ok := macVirtualKeys[rawcode]
	return vk, ok
}
