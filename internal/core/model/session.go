package model

import "time"

// Session summarizes one Active period of the controller.
type Session struct {
	ID       string
	Started  time.Time
	Ended    time.Time
	Position Point
	Clicks   uint64
	Failures uint64
}

// Duration returns how long the session was active.
func (session Session) Duration() time.Duration {
	if session.Ended.Before(session.Started) {
		return 0
	}
	return session.Ended.Sub(session.Started)
}
