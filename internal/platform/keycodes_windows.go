//go:build windows

package platform

// virtualKey returns rawcode unchanged: libuiohook reports virtual-key codes
// on Windows.
func virtualKey(rawcode uint16) (int, bool) {
	return int(rawcode), rawcode != 0
}
