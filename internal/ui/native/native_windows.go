//go:build windows

package native

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const gwlExStyle int32 = -20

const (
	wsExLayered    = 0x00080000
	wsExToolWindow = 0x00000080
	lwaAlpha       = 0x2

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
)

var (
	hwndTopmost   = ^uintptr(0)
	hwndNoTopmost = ^uintptr(1)
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procGetWindowLongPtrW          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
)

// SetTopmost pins the window above all non-topmost windows, or releases it.
func SetTopmost(window fyne.Window, topmost bool) bool {
	insertAfter := hwndNoTopmost
	if topmost {
		insertAfter = hwndTopmost
	}
	return withHWND(window, func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	})
}

// MoveTo places the window's top-left corner at x, y in screen pixels.
func MoveTo(window fyne.Window, x, y int) bool {
	return withHWND(window, func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, 0, int32ToUintptr(int32(x)), int32ToUintptr(int32(y)), 0, 0, swpNoSize|swpNoZOrder|swpNoActivate)
	})
}

// SetOpacity makes the window layered with the given alpha and hides it from
// the taskbar.
func SetOpacity(window fyne.Window, alpha uint8) bool {
	return withHWND(window, func(hwnd uintptr) {
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if style&(wsExLayered|wsExToolWindow) != wsExLayered|wsExToolWindow {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered|wsExToolWindow)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

func withHWND(window fyne.Window, apply func(hwnd uintptr)) bool {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return false
	}

	applied := false
	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		apply(hwnd)
		applied = true
	})
	return applied
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
