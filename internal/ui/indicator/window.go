// Package indicator shows a small always-on-top status light: green while
// clicking, red while idle, with a countdown to the next click.
package indicator

import (
	"context"
	"image/color"
	"strconv"
	"sync"
	"time"

	"clickclick/internal/ui/animation"
	"clickclick/internal/ui/native"
	"clickclick/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines indicator visuals.
type Config struct {
	Diameter float32
	Margin   int
	Opacity  float64

	// ScreenSize reports the primary display size used for placement.
	ScreenSize func() (width, height int, ok bool)
}

// DefaultConfig returns a 30px light at 70% opacity.
func DefaultConfig() Config {
	return Config{
		Diameter: 30,
		Margin:   20,
		Opacity:  0.7,
	}
}

// Window manages the indicator UI.
type Window struct {
	window    fyne.Window
	config    Config
	icon      *canvas.Image
	label     *canvas.Text
	countdown *animation.Countdown

	mu     sync.Mutex
	active bool
	onTap  func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden indicator window.
func New(app fyne.App, config Config) *Window {
	if config.Diameter <= 0 {
		config.Diameter = DefaultConfig().Diameter
	}

	window := app.NewWindow("ClickClick")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	icon := canvas.NewImageFromResource(resources.IndicatorIcon(false, 0))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(config.Diameter, config.Diameter))

	label := canvas.NewText("", color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = config.Diameter / 3

	indicator := &Window{
		window: window,
		config: config,
		icon:   icon,
		label:  label,
	}

	tap := newTapArea(container.NewStack(icon, container.NewCenter(label)), indicator.handleTap)
	window.SetContent(tap)
	window.Resize(fyne.NewSize(config.Diameter, config.Diameter))
	window.SetFixedSize(true)

	indicator.countdown = animation.New(animation.DefaultConfig(), func(frame animation.Frame) {
		fyne.Do(func() {
			indicator.render(frame)
		})
	})
	return indicator
}

// SetOnTap sets the handler invoked when the indicator is clicked.
func (indicator *Window) SetOnTap(handler func()) {
	indicator.mu.Lock()
	defer indicator.mu.Unlock()
	indicator.onTap = handler
}

// SetActive switches between the active and inactive colour. Safe to call
// from any goroutine.
func (indicator *Window) SetActive(active bool) {
	indicator.mu.Lock()
	indicator.active = active
	indicator.mu.Unlock()
	if !active {
		indicator.countdown.Stop()
		return
	}
	fyne.Do(func() {
		indicator.render(animation.Frame{})
	})
}

// SetCountdown starts a countdown of total, or clears it when scheduled is
// false. Safe to call from any goroutine.
func (indicator *Window) SetCountdown(total time.Duration, scheduled bool) {
	if !scheduled {
		indicator.countdown.Stop()
		return
	}
	indicator.countdown.Start(context.Background(), total)
}

// SetVisible shows or hides the indicator.
func (indicator *Window) SetVisible(visible bool) {
	fyne.Do(func() {
		if !visible {
			indicator.window.Hide()
			return
		}
		indicator.window.Show()
		indicator.place()
	})
}

// Close stops the countdown. The window itself closes with the app.
func (indicator *Window) Close() {
	indicator.countdown.Stop()
}

func (indicator *Window) handleTap() {
	indicator.mu.Lock()
	handler := indicator.onTap
	indicator.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func (indicator *Window) render(frame animation.Frame) {
	indicator.mu.Lock()
	active := indicator.active
	indicator.mu.Unlock()

	resource, text := visualFor(active, frame)
	indicator.icon.Resource = resource
	indicator.icon.Refresh()
	indicator.label.Text = text
	indicator.label.Refresh()
}

func (indicator *Window) place() {
	native.SetTopmost(indicator.window, true)
	native.SetOpacity(indicator.window, native.OpacityToAlpha(indicator.config.Opacity))
	if indicator.config.ScreenSize == nil {
		return
	}
	width, _, ok := indicator.config.ScreenSize()
	if !ok {
		return
	}
	x, y := native.TopRight(width, indicator.window.Canvas().Size(), indicator.config.Margin)
	native.MoveTo(indicator.window, x, y)
}

// visualFor picks the icon and label for a countdown frame.
func visualFor(active bool, frame animation.Frame) (fyne.Resource, string) {
	if !active || !frame.Active {
		return resources.IndicatorIcon(active, 0), ""
	}
	return resources.IndicatorIcon(true, frame.Fraction()), shortSeconds(frame.Remaining)
}

func shortSeconds(remaining time.Duration) string {
	seconds := int((remaining + time.Second - 1) / time.Second)
	if seconds > 99 {
		return "99"
	}
	return strconv.Itoa(seconds)
}

type tapArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onTap   func()
}

func newTapArea(content fyne.CanvasObject, onTap func()) *tapArea {
	area := &tapArea{content: content, onTap: onTap}
	area.ExtendBaseWidget(area)
	return area
}

func (area *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(area.content)
}

func (area *tapArea) Tapped(*fyne.PointEvent) {
	if area.onTap != nil {
		area.onTap()
	}
}
