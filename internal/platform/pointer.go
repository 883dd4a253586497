package platform

import (
	"fmt"
	"sync"

	"clickclick/internal/core/model"

	"github.com/go-vgo/robotgo"
)

// RobotPointer reads and drives the system cursor through robotgo.
type RobotPointer struct {
	mu     sync.Mutex
	button string
}

// NewRobotPointer returns a pointer that clicks with the left button.
func NewRobotPointer() *RobotPointer {
	return &RobotPointer{button: "left"}
}

// Position returns the current cursor position.
func (pointer *RobotPointer) Position() (point model.Point, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("read cursor position: %v", recovered)
		}
	}()
	x, y := robotgo.Location()
	return model.Point{X: x, Y: y}, nil
}

// Click moves the cursor to point and clicks once.
func (pointer *RobotPointer) Click(point model.Point) (err error) {
	pointer.mu.Lock()
	defer pointer.mu.Unlock()
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("click %s: %v", point, recovered)
		}
	}()
	robotgo.Move(point.X, point.Y)
	robotgo.Click(pointer.button, false)
	return nil
}

// ScreenSize returns the main display size in pixels, or ok=false when the
// display could not be queried.
func ScreenSize() (width, height int, ok bool) {
	defer func() {
		if recover() != nil {
			width, height, ok = 0, 0, false
		}
	}()
	width, height = robotgo.GetScreenSize()
	return width, height, width > 0 && height > 0
}
