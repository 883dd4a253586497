// Package resources renders the application icons. Icons are drawn at
// runtime and cached.
package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

// ProgressSteps is the number of distinct countdown arcs an indicator icon
// can show.
const ProgressSteps = 24

const iconSize = 64

var (
	activeColor   = color.NRGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	inactiveColor = color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	arcColor      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE0}
	ringColor     = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
)

var iconCache sync.Map

// IndicatorIcon returns the status circle, green when active and red when
// not, with a countdown arc covering the remaining fraction of the wait.
func IndicatorIcon(active bool, remaining float64) fyne.Resource {
	step := quantize(remaining)
	name := fmt.Sprintf("indicator-%t-%02d.png", active, step)
	return cached(name, func() []byte {
		return drawIndicator(active, float64(step)/ProgressSteps)
	})
}

// TrayIcon returns the tray icon for the given state.
func TrayIcon(active bool) fyne.Resource {
	name := fmt.Sprintf("tray-%t.png", active)
	return cached(name, func() []byte {
		return drawIndicator(active, 0)
	})
}

// AppIcon returns the application icon.
func AppIcon() fyne.Resource {
	return cached("app.png", func() []byte {
		return drawIndicator(true, 0.75)
	})
}

func cached(name string, render func() []byte) fyne.Resource {
	if resource, ok := iconCache.Load(name); ok {
		return resource.(fyne.Resource)
	}
	resource := fyne.NewStaticResource(name, render())
	actual, _ := iconCache.LoadOrStore(name, resource)
	return actual.(fyne.Resource)
}

func quantize(fraction float64) int {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return ProgressSteps
	}
	return int(math.Ceil(fraction * ProgressSteps))
}

func drawIndicator(active bool, remaining float64) []byte {
	fill := inactiveColor
	if active {
		fill = activeColor
	}

	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize-1) / 2
	outer := float64(iconSize)/2 - 1
	arcInner := outer - 7

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			distance := math.Hypot(dx, dy)
			switch {
			case distance > outer:
				continue
			case distance > outer-1.5:
				img.SetNRGBA(x, y, ringColor)
			case distance >= arcInner && remaining > 0 && onArc(dx, dy, remaining):
				img.SetNRGBA(x, y, arcColor)
			default:
				img.SetNRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(fmt.Sprintf("encode icon: %v", err))
	}
	return buf.Bytes()
}

// onArc reports whether the offset lies within the clockwise arc that starts
// at twelve o'clock and spans the remaining fraction of a full turn.
func onArc(dx, dy, remaining float64) bool {
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle <= remaining*2*math.Pi
}
