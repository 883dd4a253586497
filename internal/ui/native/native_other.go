//go:build !windows

package native

import "fyne.io/fyne/v2"

// SetTopmost is not supported on this platform.
func SetTopmost(fyne.Window, bool) bool { return false }

// MoveTo is not supported on this platform.
func MoveTo(fyne.Window, int, int) bool { return false }

// SetOpacity is not supported on this platform.
func SetOpacity(fyne.Window, uint8) bool { return false }
