package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clickclick/internal/core/controller"
	"clickclick/internal/logging"
	"clickclick/internal/platform"
	"clickclick/internal/storage"
	"clickclick/internal/ui/indicator"
	"clickclick/internal/ui/preferences"
	"clickclick/internal/ui/tray"
	"clickclick/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName     = "ClickClick"
	appID       = "com.clickclick.app"
	eventBuffer = 16
)

func main() {
	if err := buildCLI(os.Stdout).ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func execRun(ctx context.Context, options runOptions) error {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return err
	}
	settings, loadErr := storage.LoadSettings(configDir)
	settings = options.apply(settings)

	console := logging.NewSwitchWriter(os.Stderr, settings.ConsoleOutput)
	level, levelErr := logging.ParseLevel(settings.LogLevel)
	logger := logging.New(console, logging.Options{Level: level})
	if loadErr != nil {
		logger.Warn("load settings failed, using defaults", logging.Err(loadErr))
	}
	if levelErr != nil {
		logger.Warn("invalid log level", logging.Err(levelErr))
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, asking the other instance to show itself")
		return platform.NotifyRunningInstance(appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := guard.Release(); err != nil {
			logger.Warn("release single instance failed", logging.Err(err))
		}
	}()

	history, err := storage.OpenHistory(historyDir(configDir))
	if err != nil {
		return err
	}
	clicker, err := newCore(settings, history, logger)
	if err != nil {
		_ = history.Close()
		return err
	}
	defer clicker.close()
	clicker.start()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if options.trayOnly {
		runTrayOnly(ctx, clicker, guard, options.startActive)
		return nil
	}
	runDesktop(ctx, clicker, guard, settings, configDir, console, options.startActive)
	return nil
}

func runDesktop(ctx context.Context, clicker *core, guard *platform.InstanceGuard, settings preferences.Settings, configDir string, console *logging.SwitchWriter, startActive bool) {
	logger := clicker.logger
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())
	autostart := platform.NewAutostart(appName)

	indicatorConfig := indicator.DefaultConfig()
	indicatorConfig.ScreenSize = platform.ScreenSize
	statusLight := indicator.New(fyneApp, indicatorConfig)

	prefsWindow := preferences.New(fyneApp, settings, preferences.Callbacks{
		OnSave: func(updated preferences.Settings) {
			if err := storage.SaveSettings(configDir, updated); err != nil {
				logger.Error("save settings failed", logging.Err(err))
			}
			clicker.apply(updated)
			console.SetEnabled(updated.ConsoleOutput)
			statusLight.SetVisible(updated.ShowIndicator)
			syncAutostart(autostart, updated.LaunchAtLogin, logger)
			logger.Info("settings saved",
				"min_delay", updated.MinDelay,
				"max_delay", updated.MaxDelay,
				"offset", updated.OffsetRange,
				"hotkey", platform.DescribeHotkey(updated.Hotkey),
			)
		},
		OnToggle:       clicker.toggleAsync,
		OnRecordHotkey: clicker.captureHotkey,
		DescribeHotkey: platform.DescribeHotkey,
	})
	statusLight.SetOnTap(prefsWindow.Show)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnSettings: prefsWindow.Show,
			OnToggle:   clicker.toggleAsync,
			OnQuit:     fyneApp.Quit,
		})
	} else {
		logger.Warn("system tray unsupported on this platform")
	}

	publishHistory := func() {
		if totals, ok := clicker.totals(); ok {
			prefsWindow.SetHistory(totals.Sessions, totals.Clicks, totals.Failures)
		}
	}

	events := clicker.controller.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			switch event.Type {
			case controller.EventStateChange:
				active, status := event.Active(), event.Summary()
				statusLight.SetActive(active)
				prefsWindow.SetStatus(active, status)
				if trayManager != nil {
					fyne.Do(func() {
						trayManager.SetActive(active, status)
					})
				}
				if !active {
					publishHistory()
				}
			case controller.EventCountdown:
				statusLight.SetCountdown(event.Remaining, event.Scheduled)
				prefsWindow.SetCountdown(event.Remaining, event.Scheduled)
			case controller.EventError:
				logger.Warn("activation failed", "reason", event.Message)
				fyneApp.SendNotification(fyne.NewNotification(appName, event.Message))
			}
		}
	}()

	guard.Serve(func() {
		fyne.Do(prefsWindow.Show)
	})

	fyneApp.Lifecycle().SetOnStarted(func() {
		statusLight.SetVisible(settings.ShowIndicator)
		syncAutostart(autostart, settings.LaunchAtLogin, logger)
		publishHistory()
		if startActive {
			go clicker.activate()
		}
	})

	quitWatcherDone := make(chan struct{})
	defer close(quitWatcherDone)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			fyne.Do(fyneApp.Quit)
		case <-quitWatcherDone:
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		statusLight.Close()
		prefsWindow.Close()
	})

	prefsWindow.Show()
	fyneApp.Run()
}

func runTrayOnly(ctx context.Context, clicker *core, guard *platform.InstanceGuard, startActive bool) {
	logger := clicker.logger
	var icon *tray.Standalone
	icon = tray.NewStandalone(tray.Callbacks{
		OnToggle: clicker.toggleAsync,
		OnQuit: func() {
			icon.Quit()
		},
	})

	events := clicker.controller.Subscribe(eventBuffer)
	go func() {
		for event := range events {
			switch event.Type {
			case controller.EventStateChange:
				icon.SetActive(event.Active(), event.Summary())
			case controller.EventError:
				logger.Warn("activation failed", "reason", event.Message)
			}
		}
	}()

	guard.Serve(func() {
		logger.Info("tray-only mode has no settings window")
	})

	quitWatcherDone := make(chan struct{})
	defer close(quitWatcherDone)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			icon.Quit()
		case <-quitWatcherDone:
		}
	}()

	icon.Run(func() {
		if startActive {
			go clicker.activate()
		}
	})
}
