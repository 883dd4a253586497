// Package native applies window attributes fyne does not expose: topmost
// z-order, absolute placement and opacity. Only Windows implements them;
// elsewhere the calls report false.
package native

import "fyne.io/fyne/v2"

// OpacityToAlpha converts an opacity in [0, 1] to an 8-bit alpha.
func OpacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity*255 + 0.5)
}

// TopRight returns the origin that places a window of size in the top-right
// corner of a screen, inset by margin.
func TopRight(screenWidth int, size fyne.Size, margin int) (int, int) {
	x := screenWidth - int(size.Width) - margin
	if x < 0 {
		x = 0
	}
	return x, margin
}
