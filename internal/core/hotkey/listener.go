package hotkey

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clickclick/internal/core/model"
	"clickclick/internal/logging"
)

// ErrCaptureBusy indicates another CaptureNext call is already waiting.
var ErrCaptureBusy = errors.New("hotkey capture already in progress")

// ErrNotListening indicates CaptureNext was called on a stopped listener.
var ErrNotListening = errors.New("hotkey listener not running")

// KeySource is the global keyboard primitive. Start subscribes to system-wide
// key-down events; the channel is closed when the subscription ends.
type KeySource interface {
	Start() (<-chan model.KeyEvent, error)
	Stop() error
}

// Listener filters key events through Matches and invokes the toggle callback
// on the listener goroutine.
type Listener struct {
	mu       sync.Mutex
	source   KeySource
	binding  model.HotkeyBinding
	onToggle func()
	logger   logging.Logger
	running  bool
	stopCh   chan struct{}
	done     chan struct{}
	capture  chan model.KeyEvent
}

// NewListener creates a stopped listener.
func NewListener(source KeySource, binding model.HotkeyBinding, onToggle func(), logger logging.Logger) *Listener {
	return &Listener{
		source:   source,
		binding:  binding,
		onToggle: onToggle,
		logger:   logging.OrNop(logger),
	}
}

// SetHotkey replaces the binding used for subsequent events.
func (listener *Listener) SetHotkey(binding model.HotkeyBinding) {
	listener.mu.Lock()
	listener.binding = binding
	listener.mu.Unlock()
	listener.logger.Info("hotkey updated", "binding", binding.String())
}

// Hotkey returns the current binding.
func (listener *Listener) Hotkey() model.HotkeyBinding {
	listener.mu.Lock()
	defer listener.mu.Unlock()
	return listener.binding
}

// Running reports whether a subscription is active.
func (listener *Listener) Running() bool {
	listener.mu.Lock()
	defer listener.mu.Unlock()
	return listener.running
}

// Start subscribes to the key source. Calling Start while running is a no-op.
func (listener *Listener) Start() error {
	listener.mu.Lock()
	defer listener.mu.Unlock()
	if listener.running {
		return nil
	}
	if listener.source == nil {
		return fmt.Errorf("start hotkey listener: no key source")
	}
	events, err := listener.source.Start()
	if err != nil {
		return fmt.Errorf("start hotkey listener: %w", err)
	}

	listener.running = true
	listener.stopCh = make(chan struct{})
	listener.done = make(chan struct{})
	go listener.run(events, listener.stopCh, listener.done)

	listener.logger.Info("hotkey listener started", "binding", listener.binding.String())
	return nil
}

// Stop ends the subscription and waits for the listener goroutine. Calling
// Stop while stopped is a no-op.
func (listener *Listener) Stop() error {
	listener.mu.Lock()
	if !listener.running {
		listener.mu.Unlock()
		return nil
	}
	listener.running = false
	close(listener.stopCh)
	done := listener.done
	listener.mu.Unlock()

	err := listener.source.Stop()
	<-done

	if err != nil {
		return fmt.Errorf("stop hotkey listener: %w", err)
	}
	listener.logger.Info("hotkey listener stopped")
	return nil
}

// CaptureNext returns the next key-down event instead of matching it, so the
// caller can record a new binding. The toggle callback is not invoked for the
// captured event.
func (listener *Listener) CaptureNext(ctx context.Context) (model.KeyEvent, error) {
	listener.mu.Lock()
	if !listener.running {
		listener.mu.Unlock()
		return model.KeyEvent{}, ErrNotListening
	}
	if listener.capture != nil {
		listener.mu.Unlock()
		return model.KeyEvent{}, ErrCaptureBusy
	}
	capture := make(chan model.KeyEvent, 1)
	listener.capture = capture
	listener.mu.Unlock()

	defer func() {
		listener.mu.Lock()
		if listener.capture == capture {
			listener.capture = nil
		}
		listener.mu.Unlock()
	}()

	select {
	case event := <-capture:
		return event, nil
	case <-ctx.Done():
		return model.KeyEvent{}, ctx.Err()
	}
}

func (listener *Listener) run(events <-chan model.KeyEvent, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-events:
			if !ok {
				listener.subscriptionClosed(stopCh)
				return
			}
			listener.handle(event)
		}
	}
}

// subscriptionClosed handles a subscription that ended without Stop. The
// source is released so a later Start can subscribe again.
func (listener *Listener) subscriptionClosed(stopCh <-chan struct{}) {
	listener.mu.Lock()
	if listener.stopCh != stopCh || !listener.running {
		listener.mu.Unlock()
		return
	}
	listener.running = false
	source := listener.source
	listener.mu.Unlock()

	if err := source.Stop(); err != nil {
		listener.logger.Warn("release key source failed", logging.Err(err))
	}
	listener.logger.Warn("key source closed, hotkey listener stopped")
}

func (listener *Listener) handle(event model.KeyEvent) {
	defer func() {
		if recovered := recover(); recovered != nil {
			listener.logger.Warn("hotkey event handling failed", "panic", recovered)
		}
	}()

	listener.mu.Lock()
	capture := listener.capture
	if capture != nil {
		listener.capture = nil
	}
	binding := listener.binding
	onToggle := listener.onToggle
	listener.mu.Unlock()

	if capture != nil {
		capture <- event
		return
	}
	if !Matches(event, binding) {
		return
	}
	listener.logger.Debug("hotkey matched", "binding", binding.String())
	if onToggle != nil {
		onToggle()
	}
}
