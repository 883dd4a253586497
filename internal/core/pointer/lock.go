// Package pointer holds the click target model: the locked cursor position
// and the jitter applied around it.
package pointer

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"clickclick/internal/core/model"
)

// ErrNotLocked indicates a click was requested without a locked position.
var ErrNotLocked = errors.New("no position locked")

// PositionReader reads the current cursor position.
type PositionReader interface {
	Position() (model.Point, error)
}

// Device is the pointer-control primitive: read the cursor, click at a point.
type Device interface {
	PositionReader
	Click(point model.Point) error
}

// Lock stores the captured click position and computes jittered targets.
type Lock struct {
	mu           sync.Mutex
	position     *model.Point
	offsetRadius int
	rng          *rand.Rand
}

// NewLock creates an unlocked Lock. A nil rng is replaced by a time-seeded one.
func NewLock(offsetRadius int, rng *rand.Rand) *Lock {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Lock{
		offsetRadius: model.ClampOffset(offsetRadius),
		rng:          rng,
	}
}

// Lock stores point as the click position.
func (lock *Lock) Lock(point model.Point) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	lock.position = &point
}

// Capture reads the cursor position from reader and locks it.
func (lock *Lock) Capture(reader PositionReader) (model.Point, error) {
	if reader == nil {
		return model.Point{}, fmt.Errorf("capture position: no pointer device")
	}
	point, err := reader.Position()
	if err != nil {
		return model.Point{}, fmt.Errorf("capture position: %w", err)
	}
	lock.Lock(point)
	return point, nil
}

// Unlock clears the click position.
func (lock *Lock) Unlock() {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	lock.position = nil
}

// Locked returns the locked position, if any.
func (lock *Lock) Locked() (model.Point, bool) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.position == nil {
		return model.Point{}, false
	}
	return *lock.position, true
}

// NextTarget returns the locked position moved by a fresh jitter offset.
func (lock *Lock) NextTarget() (model.Point, bool) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.position == nil {
		return model.Point{}, false
	}
	dx, dy := Jitter(lock.rng, lock.offsetRadius)
	return lock.position.Offset(dx, dy), true
}

// SetOffsetRadius stores the jitter radius, clamped into [0, model.MaxOffsetRadius].
func (lock *Lock) SetOffsetRadius(radius int) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	lock.offsetRadius = model.ClampOffset(radius)
}

// OffsetRadius returns the current jitter radius.
func (lock *Lock) OffsetRadius() int {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.offsetRadius
}

// ClickNext clicks the next jittered target on device.
func (lock *Lock) ClickNext(device Device) error {
	target, ok := lock.NextTarget()
	if !ok {
		return ErrNotLocked
	}
	if err := device.Click(target); err != nil {
		return fmt.Errorf("click at %s: %w", target, err)
	}
	return nil
}
