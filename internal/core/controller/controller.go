// Package controller implements the Idle/Active state machine that ties the
// position lock, the click scheduler and the hotkey binding together.
package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"clickclick/internal/core/model"
	"clickclick/internal/core/pointer"
	"clickclick/internal/core/scheduler"
	"clickclick/internal/logging"

	"github.com/google/uuid"
)

// ErrClosed indicates the controller was closed.
var ErrClosed = errors.New("controller closed")

// ClickScheduler is the subset of scheduler.Scheduler the controller drives.
type ClickScheduler interface {
	Start() error
	Stop()
	SetDelayRange(minSeconds, maxSeconds float64)
	Status() scheduler.Status
	OnNextDelay(callback func(delay time.Duration, scheduled bool))
}

// HotkeyBinder owns the active toggle binding.
type HotkeyBinder interface {
	SetHotkey(binding model.HotkeyBinding)
	Hotkey() model.HotkeyBinding
}

// SessionRecorder persists finished sessions.
type SessionRecorder interface {
	Record(session model.Session) error
}

// Options wires the controller to its collaborators. Hotkeys and Recorder
// are optional.
type Options struct {
	Device    pointer.PositionReader
	Lock      *pointer.Lock
	Scheduler ClickScheduler
	Hotkeys   HotkeyBinder
	Recorder  SessionRecorder
	Logger    logging.Logger
}

// Status is a snapshot of the controller and its scheduler.
type Status struct {
	State        State
	Position     model.Point
	HasPosition  bool
	SessionID    string
	OffsetRadius int
	Hotkey       model.HotkeyBinding
	Scheduler    scheduler.Status
}

// Controller serializes toggles and notifies observers of transitions.
type Controller struct {
	toggleMu sync.Mutex
	device   pointer.PositionReader
	lock     *pointer.Lock
	sched    ClickScheduler
	hotkeys  HotkeyBinder
	recorder SessionRecorder
	logger   logging.Logger

	stateMu  sync.Mutex
	state    State
	position model.Point
	session  model.Session
	base     scheduler.Status
	closed   bool

	eventsMu sync.Mutex
	events   []chan Event
}

// New creates an Idle controller.
func New(options Options) (*Controller, error) {
	if options.Device == nil {
		return nil, fmt.Errorf("new controller: pointer device is required")
	}
	if options.Lock == nil {
		return nil, fmt.Errorf("new controller: position lock is required")
	}
	if options.Scheduler == nil {
		return nil, fmt.Errorf("new controller: scheduler is required")
	}

	controller := &Controller{
		device:   options.Device,
		lock:     options.Lock,
		sched:    options.Scheduler,
		hotkeys:  options.Hotkeys,
		recorder: options.Recorder,
		logger:   logging.OrNop(options.Logger),
		state:    StateIdle,
	}
	controller.sched.OnNextDelay(controller.publishCountdown)
	return controller, nil
}

// Subscribe registers a new observer channel. When the channel is full the
// oldest queued event is dropped.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.eventsMu.Lock()
	controller.events = append(controller.events, ch)
	controller.eventsMu.Unlock()
	return ch
}

// Toggle flips between Idle and Active. Activation failures are logged and
// reported to observers as EventError.
func (controller *Controller) Toggle() {
	controller.toggleMu.Lock()
	defer controller.toggleMu.Unlock()

	if controller.State() == StateActive {
		controller.deactivateLocked()
		return
	}
	if err := controller.activateLocked(); err != nil && !errors.Is(err, ErrClosed) {
		controller.logger.Warn("activation failed", logging.Err(err))
	}
}

// Activate moves to Active. It is a no-op when already Active.
func (controller *Controller) Activate() error {
	controller.toggleMu.Lock()
	defer controller.toggleMu.Unlock()
	if controller.State() == StateActive {
		return nil
	}
	return controller.activateLocked()
}

// Deactivate moves to Idle. It is a no-op when already Idle.
func (controller *Controller) Deactivate() {
	controller.toggleMu.Lock()
	defer controller.toggleMu.Unlock()
	if controller.State() == StateIdle {
		return
	}
	controller.deactivateLocked()
}

// State returns the current application state.
func (controller *Controller) State() State {
	controller.stateMu.Lock()
	defer controller.stateMu.Unlock()
	return controller.state
}

// Status returns a snapshot of the controller and its collaborators.
func (controller *Controller) Status() Status {
	controller.stateMu.Lock()
	status := Status{
		State:       controller.state,
		Position:    controller.position,
		HasPosition: controller.state == StateActive,
		SessionID:   controller.session.ID,
	}
	controller.stateMu.Unlock()

	status.OffsetRadius = controller.lock.OffsetRadius()
	status.Scheduler = controller.sched.Status()
	if controller.hotkeys != nil {
		status.Hotkey = controller.hotkeys.Hotkey()
	}
	return status
}

// SetDelayRange forwards new delay bounds in seconds to the scheduler.
func (controller *Controller) SetDelayRange(minSeconds, maxSeconds float64) {
	controller.sched.SetDelayRange(minSeconds, maxSeconds)
}

// SetOffsetRange sets the jitter radius in pixels.
func (controller *Controller) SetOffsetRange(radius int) {
	controller.lock.SetOffsetRadius(radius)
}

// SetHotkey replaces the toggle binding.
func (controller *Controller) SetHotkey(binding model.HotkeyBinding) {
	if controller.hotkeys == nil {
		return
	}
	controller.hotkeys.SetHotkey(binding)
}

// Apply pushes a full automation config to the collaborators.
func (controller *Controller) Apply(config model.AutomationConfig) {
	controller.SetDelayRange(config.MinDelay.Seconds(), config.MaxDelay.Seconds())
	controller.SetOffsetRange(config.OffsetRadius)
	if config.Hotkey.IsBound() {
		controller.SetHotkey(config.Hotkey)
	}
}

// Close deactivates the controller and closes observer channels.
func (controller *Controller) Close() {
	controller.toggleMu.Lock()
	defer controller.toggleMu.Unlock()

	if controller.State() == StateActive {
		controller.deactivateLocked()
	}

	controller.stateMu.Lock()
	controller.closed = true
	controller.stateMu.Unlock()

	controller.eventsMu.Lock()
	events := controller.events
	controller.events = nil
	controller.eventsMu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) activateLocked() error {
	controller.stateMu.Lock()
	closed := controller.closed
	controller.stateMu.Unlock()
	if closed {
		return ErrClosed
	}

	position, err := controller.lock.Capture(controller.device)
	if err != nil {
		controller.rollback(err)
		return err
	}

	base := controller.sched.Status()
	if err := controller.sched.Start(); err != nil {
		err = fmt.Errorf("start scheduler: %w", err)
		controller.rollback(err)
		return err
	}

	now := time.Now()
	session := model.Session{
		ID:       uuid.NewString(),
		Started:  now,
		Position: position,
	}

	controller.stateMu.Lock()
	controller.state = StateActive
	controller.position = position
	controller.session = session
	controller.base = base
	controller.stateMu.Unlock()

	controller.logger.Info("automation active", "position", position.String(), "session", session.ID)
	controller.emit(Event{
		Type:        EventStateChange,
		State:       StateActive,
		Position:    position,
		HasPosition: true,
		SessionID:   session.ID,
		At:          now,
	})
	return nil
}

// rollback undoes a partial activation in reverse order and stays Idle.
func (controller *Controller) rollback(cause error) {
	controller.attempt("stop scheduler", controller.sched.Stop)
	controller.attempt("unlock position", controller.lock.Unlock)

	now := time.Now()
	controller.emit(Event{
		Type:    EventError,
		State:   StateIdle,
		Message: cause.Error(),
		At:      now,
	})
	controller.emit(Event{
		Type:  EventStateChange,
		State: StateIdle,
		At:    now,
	})
}

func (controller *Controller) deactivateLocked() {
	controller.attempt("stop scheduler", controller.sched.Stop)
	controller.attempt("unlock position", controller.lock.Unlock)

	now := time.Now()
	controller.stateMu.Lock()
	session := controller.session
	base := controller.base
	controller.state = StateIdle
	controller.position = model.Point{}
	controller.session = model.Session{}
	controller.stateMu.Unlock()

	final := controller.sched.Status()
	session.Ended = now
	session.Clicks = final.Clicks - base.Clicks
	session.Failures = final.Failures - base.Failures

	controller.logger.Info("automation idle",
		"session", session.ID,
		"clicks", session.Clicks,
		"failures", session.Failures,
		"duration", session.Duration().Round(time.Millisecond),
	)

	if controller.recorder != nil && session.ID != "" {
		controller.attempt("record session", func() {
			if err := controller.recorder.Record(session); err != nil {
				controller.logger.Warn("record session failed", logging.Err(err))
			}
		})
	}

	controller.emit(Event{
		Type:      EventStateChange,
		State:     StateIdle,
		SessionID: session.ID,
		At:        now,
	})
	controller.emit(Event{
		Type:  EventCountdown,
		State: StateIdle,
		At:    now,
	})
}

// attempt runs step and contains a panic so later steps still run.
func (controller *Controller) attempt(name string, step func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			controller.logger.Warn("controller step failed", "step", name, "panic", recovered)
		}
	}()
	step()
}

func (controller *Controller) publishCountdown(delay time.Duration, scheduled bool) {
	event := Event{
		Type:      EventCountdown,
		State:     StateActive,
		Remaining: delay,
		Scheduled: scheduled,
		At:        time.Now(),
	}
	if !scheduled {
		event.State = StateIdle
		event.Remaining = 0
	}
	controller.emit(event)
}

func (controller *Controller) emit(event Event) {
	controller.eventsMu.Lock()
	defer controller.eventsMu.Unlock()
	for _, ch := range controller.events {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
