// Package animation drives the countdown shown by the status indicator and
// the settings window between scheduler notifications.
package animation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config contains countdown timing values.
type Config struct {
	FrameInterval time.Duration

	// MinFrames is the number of frames emitted even for waits shorter than
	// one interval.
	MinFrames int
}

// Frame is one countdown update.
type Frame struct {
	Active    bool
	Remaining time.Duration
	Total     time.Duration
}

// Fraction returns the remaining share of the wait in [0, 1].
func (frame Frame) Fraction() float64 {
	if !frame.Active || frame.Total <= 0 {
		return 0
	}
	fraction := float64(frame.Remaining) / float64(frame.Total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// Label renders the remaining time as seconds with one decimal.
func (frame Frame) Label() string {
	if !frame.Active {
		return "--"
	}
	return FormatRemaining(frame.Remaining)
}

// Countdown emits frames from a background goroutine until the wait elapses
// or a new wait replaces it.
type Countdown struct {
	mu     sync.Mutex
	config Config
	update func(Frame)
	cancel context.CancelFunc
	now    func() time.Time
}

// New creates a countdown that reports frames to update.
func New(config Config, update func(Frame)) *Countdown {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	if config.MinFrames <= 0 {
		config.MinFrames = 1
	}
	return &Countdown{
		config: config,
		update: update,
		now:    time.Now,
	}
}

// Start begins counting down total, replacing any running countdown.
func (countdown *Countdown) Start(ctx context.Context, total time.Duration) {
	countdown.start(ctx, func(runCtx context.Context) {
		started := countdown.now()
		frames := 0
		for {
			remaining := total - countdown.now().Sub(started)
			if remaining < 0 {
				remaining = 0
			}
			countdown.emit(runCtx, Frame{Active: true, Remaining: remaining, Total: total})
			frames++
			if remaining == 0 && frames >= countdown.config.MinFrames {
				return
			}
			if !sleepWithContext(runCtx, min(countdown.config.FrameInterval, max(remaining, time.Millisecond))) {
				return
			}
		}
	})
}

// Stop cancels the running countdown and emits an inactive frame.
func (countdown *Countdown) Stop() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.cancel != nil {
		countdown.cancel()
		countdown.cancel = nil
	}
	if countdown.update != nil {
		countdown.update(Frame{})
	}
}

func (countdown *Countdown) start(parent context.Context, run func(context.Context)) {
	countdown.mu.Lock()
	if countdown.cancel != nil {
		countdown.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	countdown.cancel = cancel
	countdown.mu.Unlock()

	go run(runCtx)
}

// emit holds the lock so no frame of a cancelled run follows Stop's frame.
func (countdown *Countdown) emit(ctx context.Context, frame Frame) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if ctx.Err() != nil || countdown.update == nil {
		return
	}
	countdown.update(frame)
}

// FormatRemaining renders a duration as seconds with one decimal.
func FormatRemaining(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	return fmt.Sprintf("%.1fs", value.Seconds())
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
