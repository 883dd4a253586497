// Package scheduler runs the background click loop: wait a random delay
// between the configured bounds, then request one click, until stopped.
package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"clickclick/internal/core/model"
	"clickclick/internal/logging"
)

// ErrAlreadyRunning is returned by Start when the loop is already running.
var ErrAlreadyRunning = errors.New("scheduler already running")

// stopMargin is added to the maximum delay to bound how long Stop waits.
const stopMargin = 2 * time.Second

// Clicker performs one click on behalf of the loop.
type Clicker interface {
	Click() error
}

// ClickFunc adapts a function to Clicker.
type ClickFunc func() error

// Click calls f.
func (f ClickFunc) Click() error {
	return f()
}

// Config holds the initial delay bounds and the random source.
type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	Rand     *rand.Rand
}

// Status is a point-in-time snapshot of the scheduler.
type Status struct {
	Running  bool
	MinDelay time.Duration
	MaxDelay time.Duration
	Clicks   uint64
	Failures uint64
}

// Scheduler owns the click loop goroutine.
type Scheduler struct {
	mu          sync.Mutex
	clicker     Clicker
	logger      logging.Logger
	rng         *rand.Rand
	running     bool
	minDelay    time.Duration
	maxDelay    time.Duration
	stopCh      chan struct{}
	done        chan struct{}
	onNextDelay func(delay time.Duration, scheduled bool)
	clicks      uint64
	failures    uint64
	launch      func(func()) error
	stopMargin  time.Duration
}

// New creates a stopped scheduler. Delay bounds are clamped and ordered.
func New(clicker Clicker, config Config, logger logging.Logger) *Scheduler {
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	minDelay, maxDelay := orderedBounds(model.ClampDelay(config.MinDelay), model.ClampDelay(config.MaxDelay))
	return &Scheduler{
		clicker:  clicker,
		logger:   logging.OrNop(logger),
		rng:      config.Rand,
		minDelay: minDelay,
		maxDelay: maxDelay,
		launch: func(worker func()) error {
			go worker()
			return nil
		},
		stopMargin: stopMargin,
	}
}

// OnNextDelay registers the countdown observer. It is called with the sampled
// delay at the start of every wait and with scheduled=false when the loop
// exits. Only one observer is kept.
func (scheduler *Scheduler) OnNextDelay(callback func(delay time.Duration, scheduled bool)) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.onNextDelay = callback
}

// Start launches the click loop and returns immediately.
func (scheduler *Scheduler) Start() error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.running {
		return ErrAlreadyRunning
	}

	stopCh := make(chan struct{})
	done := make(chan struct{})
	scheduler.running = true
	scheduler.stopCh = stopCh
	scheduler.done = done

	if err := scheduler.launch(func() { scheduler.run(stopCh, done) }); err != nil {
		scheduler.running = false
		scheduler.stopCh = nil
		scheduler.done = nil
		return fmt.Errorf("launch click loop: %w", err)
	}

	scheduler.logger.Info("click loop started",
		"min_delay", scheduler.minDelay,
		"max_delay", scheduler.maxDelay,
	)
	return nil
}

// Stop ends the click loop and waits up to the maximum delay plus a margin
// for it to exit. Once Stop returns without a timeout no further click is
// issued by that loop. Calling Stop while stopped is a no-op.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if !scheduler.running {
		scheduler.mu.Unlock()
		return
	}
	scheduler.running = false
	close(scheduler.stopCh)
	done := scheduler.done
	wait := scheduler.maxDelay + scheduler.stopMargin
	scheduler.stopCh = nil
	scheduler.done = nil
	scheduler.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-done:
		scheduler.logger.Info("click loop stopped")
	case <-timer.C:
		scheduler.logger.Warn("click loop did not exit in time, abandoning it", "waited", wait)
	}
}

// SetDelayRange replaces both delay bounds, given in seconds. NaN and
// infinite values leave the bounds unchanged; others are clamped into
// [model.MinClickDelay, model.MaxClickDelay] and swapped when min > max.
func (scheduler *Scheduler) SetDelayRange(minSeconds, maxSeconds float64) {
	minDelay, ok := model.SecondsToDelay(minSeconds)
	if !ok {
		return
	}
	maxDelay, ok := model.SecondsToDelay(maxSeconds)
	if !ok {
		return
	}
	minDelay, maxDelay = orderedBounds(minDelay, maxDelay)

	scheduler.mu.Lock()
	scheduler.minDelay = minDelay
	scheduler.maxDelay = maxDelay
	scheduler.mu.Unlock()

	scheduler.logger.Debug("delay range updated", "min_delay", minDelay, "max_delay", maxDelay)
}

// Status returns a snapshot of the scheduler state.
func (scheduler *Scheduler) Status() Status {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return Status{
		Running:  scheduler.running,
		MinDelay: scheduler.minDelay,
		MaxDelay: scheduler.maxDelay,
		Clicks:   scheduler.clicks,
		Failures: scheduler.failures,
	}
}

func (scheduler *Scheduler) run(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer scheduler.publishFrom(stopCh, 0, false)

	for {
		delay := scheduler.sampleDelay()
		scheduler.publishFrom(stopCh, delay, true)

		timer := time.NewTimer(delay)
		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}

		select {
		case <-stopCh:
			return
		default:
		}
		scheduler.click()
	}
}

// sampleDelay draws from the bounds current at the time of the call.
func (scheduler *Scheduler) sampleDelay() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	span := scheduler.maxDelay - scheduler.minDelay
	if span <= 0 {
		return scheduler.minDelay
	}
	return scheduler.minDelay + time.Duration(scheduler.rng.Int63n(int64(span)+1))
}

// publishFrom notifies the observer on behalf of the loop owning stopCh. A
// loop abandoned by a timed-out Stop stays silent once another loop has
// started, and never reports a new delay.
func (scheduler *Scheduler) publishFrom(stopCh <-chan struct{}, delay time.Duration, scheduled bool) {
	scheduler.mu.Lock()
	current := scheduler.stopCh == stopCh
	if !scheduled && scheduler.stopCh == nil {
		current = true
	}
	callback := scheduler.onNextDelay
	scheduler.mu.Unlock()
	if callback == nil || !current {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			scheduler.logger.Warn("countdown observer panicked", "panic", recovered)
		}
	}()
	callback(delay, scheduled)
}

func (scheduler *Scheduler) click() {
	defer func() {
		if recovered := recover(); recovered != nil {
			scheduler.recordFailure(fmt.Errorf("click panicked: %v", recovered))
		}
	}()

	if err := scheduler.clicker.Click(); err != nil {
		scheduler.recordFailure(err)
		return
	}
	scheduler.mu.Lock()
	scheduler.clicks++
	scheduler.mu.Unlock()
}

func (scheduler *Scheduler) recordFailure(err error) {
	scheduler.mu.Lock()
	scheduler.failures++
	scheduler.mu.Unlock()
	scheduler.logger.Warn("click failed", logging.Err(err))
}

func orderedBounds(minDelay, maxDelay time.Duration) (time.Duration, time.Duration) {
	if minDelay > maxDelay {
		return maxDelay, minDelay
	}
	return minDelay, maxDelay
}
