package tray

import (
	"clickclick/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const idleStatus = "Status: stopped"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings func()
	OnToggle   func()
	OnQuit     func()
}

// Manager handles system tray state through the fyne desktop driver.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	active     bool
	status     string
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu state without rendering it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    idleStatus,
	}

	manager.statusItem = fyne.NewMenuItem(manager.status, nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem(ToggleLabel(false), func() {
		call(manager.callbacks.OnToggle)
	})

	if app != nil {
		app.SetSystemTrayIcon(resources.TrayIcon(false))
	}
	manager.refreshMenu()
	return manager
}

// SetActive updates the status line, toggle item and tray icon. Must run on
// the UI thread.
func (manager *Manager) SetActive(active bool, status string) {
	manager.active = active
	manager.status = status
	manager.statusItem.Label = manager.status
	manager.toggleItem.Label = ToggleLabel(active)
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(resources.TrayIcon(active))
	}
	manager.refreshMenu()
}

// Active reports the last state passed to SetActive.
func (manager *Manager) Active() bool {
	return manager.active
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("ClickClick",
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem("Settings", func() {
			call(manager.callbacks.OnSettings)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	))
}

// ToggleLabel names the toggle action for the current state.
func ToggleLabel(active bool) string {
	if active {
		return "Stop clicking"
	}
	return "Start clicking"
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
