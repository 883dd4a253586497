package preferences

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"clickclick/internal/core/model"
	"clickclick/internal/ui/animation"
	"clickclick/internal/ui/native"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const hotkeyCaptureTimeout = 10 * time.Second

// Callbacks defines settings window action handlers.
type Callbacks struct {
	OnSave   func(Settings)
	OnToggle func()

	// OnRecordHotkey blocks until the next key press or ctx ends.
	OnRecordHotkey func(ctx context.Context) (model.HotkeyBinding, error)
	DescribeHotkey func(model.HotkeyBinding) string
}

// Window handles the settings UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	hotkey    model.HotkeyBinding
	callbacks Callbacks
	countdown *animation.Countdown

	minDelay      *widget.Entry
	maxDelay      *widget.Entry
	validation    *widget.Label
	offset        *widget.Slider
	offsetValue   *widget.Label
	hotkeyLabel   *widget.Label
	recordButton  *widget.Button
	alwaysOnTop   *widget.Check
	showIndicator *widget.Check
	launchAtLogin *widget.Check
	consoleOutput *widget.Check
	status        *widget.Label
	remaining     *widget.Label
	progress      *widget.ProgressBar
	toggleButton  *widget.Button
	history       *widget.Label
}

// New creates a settings window. Closing it only hides it.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("ClickClick Settings")
	settings = settings.Normalized()

	prefs := &Window{
		window:        window,
		settings:      settings,
		hotkey:        settings.Hotkey,
		callbacks:     callbacks,
		minDelay:      widget.NewEntry(),
		maxDelay:      widget.NewEntry(),
		validation:    widget.NewLabel(""),
		offset:        widget.NewSlider(0, model.MaxOffsetRadius),
		offsetValue:   widget.NewLabel(""),
		hotkeyLabel:   widget.NewLabel(""),
		alwaysOnTop:   widget.NewCheck("Always on top", nil),
		showIndicator: widget.NewCheck("Show status indicator", nil),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
		consoleOutput: widget.NewCheck("Console output", nil),
		status:        widget.NewLabel("Status: stopped"),
		remaining:     widget.NewLabel(animation.Frame{}.Label()),
		progress:      widget.NewProgressBar(),
		history:       widget.NewLabel(historyText(0, 0, 0)),
	}

	prefs.validation.Wrapping = fyne.TextWrapWord
	prefs.offset.Step = 1
	prefs.offset.OnChanged = func(value float64) {
		prefs.offsetValue.SetText(offsetText(int(value)))
	}
	prefs.progress.TextFormatter = func() string { return "" }
	prefs.recordButton = widget.NewButton("Record", prefs.recordHotkey)
	prefs.toggleButton = widget.NewButton("Start", func() {
		if prefs.callbacks.OnToggle != nil {
			prefs.callbacks.OnToggle()
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, widget.NewLabel("Min delay"), prefs.minDelay, widget.NewLabel("sec")),
		container.NewGridWithColumns(3, widget.NewLabel("Max delay"), prefs.maxDelay, widget.NewLabel("sec")),
		prefs.validation,
		container.NewBorder(nil, nil, widget.NewLabel("Offset"), prefs.offsetValue, prefs.offset),
		widget.NewLabelWithStyle("Hotkey", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, prefs.recordButton, prefs.hotkeyLabel),
		widget.NewLabelWithStyle("Window", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.alwaysOnTop,
		prefs.showIndicator,
		prefs.launchAtLogin,
		prefs.consoleOutput,
		widget.NewSeparator(),
		prefs.status,
		container.NewBorder(nil, nil, widget.NewLabel("Next click"), prefs.remaining, prefs.progress),
		prefs.history,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	buttons := container.NewHBox(prefs.toggleButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 520))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.countdown = animation.New(animation.DefaultConfig(), func(frame animation.Frame) {
		fyne.Do(func() {
			prefs.remaining.SetText(frame.Label())
			prefs.progress.SetValue(frame.Fraction())
		})
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
	native.SetTopmost(prefs.window, prefs.settings.AlwaysOnTop)
}

// UpdateSettings replaces window values. Must run on the UI thread.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Normalized()
	prefs.settings = settings
	prefs.hotkey = settings.Hotkey
	prefs.minDelay.SetText(formatSeconds(settings.MinDelay))
	prefs.maxDelay.SetText(formatSeconds(settings.MaxDelay))
	prefs.validation.SetText("")
	prefs.offset.SetValue(float64(settings.OffsetRange))
	prefs.offsetValue.SetText(offsetText(settings.OffsetRange))
	prefs.hotkeyLabel.SetText(prefs.describe(settings.Hotkey))
	prefs.alwaysOnTop.SetChecked(settings.AlwaysOnTop)
	prefs.showIndicator.SetChecked(settings.ShowIndicator)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.consoleOutput.SetChecked(settings.ConsoleOutput)
}

// SetStatus shows whether automation is running. Safe to call from any
// goroutine.
func (prefs *Window) SetStatus(active bool, status string) {
	if !active {
		prefs.countdown.Stop()
	}
	fyne.Do(func() {
		prefs.status.SetText(status)
		if active {
			prefs.toggleButton.SetText("Stop")
		} else {
			prefs.toggleButton.SetText("Start")
		}
	})
}

// SetCountdown starts the next-click countdown, or clears it when scheduled
// is false. Safe to call from any goroutine.
func (prefs *Window) SetCountdown(total time.Duration, scheduled bool) {
	if !scheduled {
		prefs.countdown.Stop()
		return
	}
	prefs.countdown.Start(context.Background(), total)
}

// SetHistory shows lifetime totals. Safe to call from any goroutine.
func (prefs *Window) SetHistory(sessions int, clicks, failures uint64) {
	fyne.Do(func() {
		prefs.history.SetText(historyText(sessions, clicks, failures))
	})
}

// Close stops the countdown.
func (prefs *Window) Close() {
	prefs.countdown.Stop()
}

func (prefs *Window) handleSave() {
	minDelay, maxDelay, err := ValidateDelayRange(prefs.minDelay.Text, prefs.maxDelay.Text)
	if err != nil {
		prefs.validation.SetText(err.Error())
		return
	}

	settings := prefs.settings
	settings.MinDelay = minDelay
	settings.MaxDelay = maxDelay
	settings.OffsetRange = int(prefs.offset.Value)
	settings.Hotkey = prefs.hotkey
	settings.AlwaysOnTop = prefs.alwaysOnTop.Checked
	settings.ShowIndicator = prefs.showIndicator.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	settings.ConsoleOutput = prefs.consoleOutput.Checked

	prefs.UpdateSettings(settings)
	native.SetTopmost(prefs.window, prefs.settings.AlwaysOnTop)
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(prefs.settings)
	}
}

func (prefs *Window) recordHotkey() {
	if prefs.callbacks.OnRecordHotkey == nil {
		return
	}
	prefs.recordButton.Disable()
	prefs.hotkeyLabel.SetText("Press a key...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), hotkeyCaptureTimeout)
		defer cancel()
		binding, err := prefs.callbacks.OnRecordHotkey(ctx)

		fyne.Do(func() {
			prefs.recordButton.Enable()
			if err != nil {
				prefs.validation.SetText(fmt.Sprintf("hotkey: %v", err))
			} else if binding.IsBound() {
				prefs.hotkey = binding
			}
			prefs.hotkeyLabel.SetText(prefs.describe(prefs.hotkey))
		})
	}()
}

func (prefs *Window) describe(binding model.HotkeyBinding) string {
	if prefs.callbacks.DescribeHotkey != nil {
		return prefs.callbacks.DescribeHotkey(binding)
	}
	return binding.String()
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64)
}

func offsetText(radius int) string {
	return fmt.Sprintf("±%d px", radius)
}

func historyText(sessions int, clicks, failures uint64) string {
	if failures == 0 {
		return fmt.Sprintf("%d sessions, %d clicks", sessions, clicks)
	}
	return fmt.Sprintf("%d sessions, %d clicks, %d failed", sessions, clicks, failures)
}
