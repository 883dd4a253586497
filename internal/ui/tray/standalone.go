package tray

import (
	"sync"

	"clickclick/resources"

	"fyne.io/systray"
)

// Standalone is a tray icon without any fyne windows, used in tray-only
// mode. Run must be called from the main goroutine.
type Standalone struct {
	callbacks Callbacks

	mu         sync.Mutex
	ready      bool
	active     bool
	status     string
	statusItem *systray.MenuItem
	toggleItem *systray.MenuItem
}

// NewStandalone creates a tray-only icon. OnSettings is ignored.
func NewStandalone(callbacks Callbacks) *Standalone {
	return &Standalone{
		callbacks: callbacks,
		status:    idleStatus,
	}
}

// Run shows the icon and blocks until Quit.
func (standalone *Standalone) Run(onReady func()) {
	systray.Run(func() {
		standalone.setup()
		if onReady != nil {
			onReady()
		}
	}, nil)
}

// Quit removes the icon and makes Run return.
func (standalone *Standalone) Quit() {
	systray.Quit()
}

// SetActive updates the menu and icon. Safe to call from any goroutine.
func (standalone *Standalone) SetActive(active bool, status string) {
	standalone.mu.Lock()
	defer standalone.mu.Unlock()
	standalone.active = active
	standalone.status = status
	if standalone.ready {
		standalone.render()
	}
}

func (standalone *Standalone) setup() {
	systray.SetTitle("ClickClick")
	systray.SetTooltip("ClickClick auto clicker")

	statusItem := systray.AddMenuItem("", "")
	statusItem.Disable()
	toggleItem := systray.AddMenuItem("", "Toggle clicking")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Quit ClickClick")

	standalone.mu.Lock()
	standalone.statusItem = statusItem
	standalone.toggleItem = toggleItem
	standalone.ready = true
	standalone.render()
	standalone.mu.Unlock()

	go func() {
		for {
			select {
			case <-toggleItem.ClickedCh:
				call(standalone.callbacks.OnToggle)
			case <-quitItem.ClickedCh:
				call(standalone.callbacks.OnQuit)
				return
			}
		}
	}()
}

func (standalone *Standalone) render() {
	systray.SetIcon(resources.TrayIcon(standalone.active).Content())
	standalone.statusItem.SetTitle(standalone.status)
	standalone.toggleItem.SetTitle(ToggleLabel(standalone.active))
}
