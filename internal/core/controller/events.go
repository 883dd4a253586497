package controller

import (
	"fmt"
	"time"

	"clickclick/internal/core/model"
)

// State is the application state owned by the controller.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

// EventType defines the type of controller event.
type EventType string

const (
	// EventStateChange reports a transition; Position is set while Active.
	EventStateChange EventType = "state_change"

	// EventCountdown reports the delay until the next click. Scheduled is
	// false when the countdown should be cleared.
	EventCountdown EventType = "countdown"

	// EventError reports a failed activation.
	EventError EventType = "error"
)

// Event is a controller update for observers.
type Event struct {
	Type        EventType
	State       State
	Position    model.Point
	HasPosition bool
	Remaining   time.Duration
	Scheduled   bool
	SessionID   string
	Message     string
	At          time.Time
}

// Active reports whether the event describes the Active state.
func (event Event) Active() bool {
	return event.State == StateActive
}

// Summary renders the event's state as a one-line status.
func (event Event) Summary() string {
	switch {
	case !event.Active():
		return "Status: stopped"
	case event.HasPosition:
		return fmt.Sprintf("Status: clicking at %s", event.Position)
	default:
		return "Status: clicking"
	}
}
