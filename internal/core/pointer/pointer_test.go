package pointer

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"clickclick/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDevice struct {
	mu       sync.Mutex
	position model.Point
	readErr  error
	clickErr error
	clicks   []model.Point
}

func (device *recordingDevice) Position() (model.Point, error) {
	device.mu.Lock()
	defer device.mu.Unlock()
	return device.position, device.readErr
}

func (device *recordingDevice) Click(point model.Point) error {
	device.mu.Lock()
	defer device.mu.Unlock()
	device.clicks = append(device.clicks, point)
	return device.clickErr
}

func (device *recordingDevice) snapshot() []model.Point {
	device.mu.Lock()
	defer device.mu.Unlock()
	out := make([]model.Point, len(device.clicks))
	copy(out, device.clicks)
	return out
}

func TestJitterStaysWithinRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, radius := range []int{0, 1, 3, 17, model.MaxOffsetRadius} {
		for i := 0; i < 10000; i++ {
			dx, dy := Jitter(rng, radius)
			require.GreaterOrEqual(t, dx, -radius)
			require.LessOrEqual(t, dx, radius)
			require.GreaterOrEqual(t, dy, -radius)
			require.LessOrEqual(t, dy, radius)
		}
	}
}

func TestJitterZeroRadiusIsOrigin(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		dx, dy := Jitter(rng, 0)
		require.Zero(t, dx)
		require.Zero(t, dy)
	}
}

func TestJitterReachesBothBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		dx, _ := Jitter(rng, 2)
		seen[dx] = true
	}
	assert.Len(t, seen, 5)
	assert.True(t, seen[-2])
	assert.True(t, seen[2])
}

func TestNextTargetRequiresLock(t *testing.T) {
	lock := NewLock(3, rand.New(rand.NewSource(4)))
	_, ok := lock.NextTarget()
	assert.False(t, ok)

	lock.Lock(model.Point{X: 10, Y: 20})
	_, ok = lock.NextTarget()
	assert.True(t, ok)

	lock.Unlock()
	lock.Unlock()
	_, ok = lock.NextTarget()
	assert.False(t, ok)
}

func TestNextTargetStaysInsideJitterBox(t *testing.T) {
	lock := NewLock(3, rand.New(rand.NewSource(5)))
	lock.Lock(model.Point{X: 100, Y: 100})

	device := &recordingDevice{}
	for i := 0; i < 500; i++ {
		require.NoError(t, lock.ClickNext(device))
	}

	clicks := device.snapshot()
	require.Len(t, clicks, 500)
	for _, click := range clicks {
		assert.GreaterOrEqual(t, click.X, 97)
		assert.LessOrEqual(t, click.X, 103)
		assert.GreaterOrEqual(t, click.Y, 97)
		assert.LessOrEqual(t, click.Y, 103)
	}
}

func TestSetOffsetRadiusClamps(t *testing.T) {
	lock := NewLock(0, nil)
	lock.SetOffsetRadius(-1)
	assert.Equal(t, 0, lock.OffsetRadius())
	lock.SetOffsetRadius(500)
	assert.Equal(t, model.MaxOffsetRadius, lock.OffsetRadius())
	lock.SetOffsetRadius(9)
	assert.Equal(t, 9, lock.OffsetRadius())
}

func TestCaptureLocksCursorPosition(t *testing.T) {
	lock := NewLock(0, nil)
	device := &recordingDevice{position: model.Point{X: 150, Y: 275}}

	point, err := lock.Capture(device)
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 150, Y: 275}, point)

	locked, ok := lock.Locked()
	require.True(t, ok)
	assert.Equal(t, point, locked)
}

func TestCaptureFailureLeavesLockEmpty(t *testing.T) {
	lock := NewLock(0, nil)
	device := &recordingDevice{readErr: errors.New("no display")}

	_, err := lock.Capture(device)
	require.Error(t, err)
	_, ok := lock.Locked()
	assert.False(t, ok)
}

func TestClickNextWithoutLock(t *testing.T) {
	lock := NewLock(0, nil)
	device := &recordingDevice{}
	assert.ErrorIs(t, lock.ClickNext(device), ErrNotLocked)
	assert.Empty(t, device.snapshot())
}

func TestClickNextWrapsDeviceError(t *testing.T) {
	lock := NewLock(0, nil)
	lock.Lock(model.Point{X: 50, Y: 60})
	boom := errors.New("boom")
	device := &recordingDevice{clickErr: boom}

	err := lock.ClickNext(device)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []model.Point{{X: 50, Y: 60}}, device.snapshot())
}
