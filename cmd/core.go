package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"clickclick/internal/core/controller"
	"clickclick/internal/core/hotkey"
	"clickclick/internal/core/model"
	"clickclick/internal/core/pointer"
	"clickclick/internal/core/scheduler"
	"clickclick/internal/logging"
	"clickclick/internal/platform"
	"clickclick/internal/storage"
	"clickclick/internal/ui/preferences"
)

// core owns the click automation components for the process lifetime.
type core struct {
	controller *controller.Controller
	listener   *hotkey.Listener
	history    *storage.History
	logger     *slog.Logger
}

func newCore(settings preferences.Settings, history *storage.History, logger *slog.Logger) (*core, error) {
	config := settings.AutomationConfig()
	seed := time.Now().UnixNano()

	device := platform.NewRobotPointer()
	lock := pointer.NewLock(config.OffsetRadius, rand.New(rand.NewSource(seed)))
	clicks := scheduler.New(scheduler.ClickFunc(func() error {
		return lock.ClickNext(device)
	}), scheduler.Config{
		MinDelay: config.MinDelay,
		MaxDelay: config.MaxDelay,
		Rand:     rand.New(rand.NewSource(seed + 1)),
	}, logger)

	clicker := &core{history: history, logger: logger}
	clicker.listener = hotkey.NewListener(platform.NewHookKeySource(), config.Hotkey, func() {
		clicker.controller.Toggle()
	}, logger)

	ctrl, err := controller.New(controller.Options{
		Device:    device,
		Lock:      lock,
		Scheduler: clicks,
		Hotkeys:   clicker.listener,
		Recorder:  history,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	clicker.controller = ctrl
	return clicker, nil
}

func (clicker *core) start() {
	if err := clicker.listener.Start(); err != nil {
		clicker.logger.Error("hotkey listener unavailable", logging.Err(err))
		return
	}
	clicker.logger.Info("press the hotkey to toggle clicking",
		"hotkey", platform.DescribeHotkey(clicker.listener.Hotkey()))
}

// toggleAsync toggles off the caller's goroutine. UI callbacks use it since
// stopping may wait for the click loop to exit.
func (clicker *core) toggleAsync() {
	inBackground(clicker.controller.Toggle)()
}

func inBackground(action func()) func() {
	return func() { go action() }
}

func (clicker *core) activate() {
	if err := clicker.controller.Activate(); err != nil {
		clicker.logger.Warn("start active failed", logging.Err(err))
	}
}

func (clicker *core) apply(settings preferences.Settings) {
	clicker.controller.Apply(settings.AutomationConfig())
}

func (clicker *core) captureHotkey(ctx context.Context) (model.HotkeyBinding, error) {
	event, err := clicker.listener.CaptureNext(ctx)
	if err != nil {
		return model.HotkeyBinding{}, err
	}
	binding := model.BindingFromEvent(event)
	if !binding.IsBound() {
		return model.HotkeyBinding{}, fmt.Errorf("key %q cannot be used as a hotkey", event.Name)
	}
	clicker.logger.Debug("hotkey captured", "hotkey", platform.DescribeHotkey(binding))
	return binding, nil
}

func (clicker *core) totals() (storage.Totals, bool) {
	totals, err := clicker.history.Totals()
	if err != nil {
		clicker.logger.Warn("read history failed", logging.Err(err))
		return storage.Totals{}, false
	}
	return totals, true
}

// close stops clicking, then the hotkey listener, then the history store.
func (clicker *core) close() {
	clicker.controller.Close()
	if err := clicker.listener.Stop(); err != nil {
		clicker.logger.Warn("stop hotkey listener failed", logging.Err(err))
	}
	if err := clicker.history.Close(); err != nil {
		clicker.logger.Warn("close history failed", logging.Err(err))
	}
}

func syncAutostart(autostart platform.Autostart, enabled bool, logger *slog.Logger) {
	current, err := autostart.Enabled()
	if err != nil {
		logger.Warn("read autostart state failed", logging.Err(err))
		return
	}
	if current == enabled {
		return
	}
	if !enabled {
		if err := autostart.Disable(); err != nil {
			logger.Warn("disable autostart failed", logging.Err(err))
		}
		return
	}
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("resolve executable failed", logging.Err(err))
		return
	}
	if err := autostart.Enable(execPath); err != nil {
		logger.Warn("enable autostart failed", logging.Err(err))
	}
}
