package platform

import (
	"errors"
	"sync"
	"unicode"

	"clickclick/internal/core/model"

	hook "github.com/robotn/gohook"
)

// charUndefined is the keychar libuiohook reports for key presses.
const charUndefined = 0xFFFF

// ErrHookUnavailable indicates the global keyboard hook could not start.
var ErrHookUnavailable = errors.New("global keyboard hook unavailable")

// HookKeySource delivers system-wide key presses from gohook. Only one hook
// can run per process.
type HookKeySource struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewHookKeySource returns a stopped key source.
func NewHookKeySource() *HookKeySource {
	return &HookKeySource{}
}

// Start begins the hook and returns a channel of key-down events. The
// channel is closed when the hook ends.
func (source *HookKeySource) Start() (<-chan model.KeyEvent, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.running {
		return nil, errors.New("key source already started")
	}

	raw := hook.Start()
	if raw == nil {
		return nil, ErrHookUnavailable
	}

	out := make(chan model.KeyEvent, 16)
	source.stop = make(chan struct{})
	source.done = make(chan struct{})
	source.running = true
	go pump(raw, out, source.stop, source.done)
	return out, nil
}

// Stop ends the hook. Calling Stop while stopped is a no-op.
func (source *HookKeySource) Stop() error {
	source.mu.Lock()
	if !source.running {
		source.mu.Unlock()
		return nil
	}
	source.running = false
	close(source.stop)
	done := source.done
	source.mu.Unlock()

	hook.End()
	<-done
	return nil
}

func pump(raw chan hook.Event, out chan<- model.KeyEvent, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer close(out)
	for {
		select {
		case <-stop:
			return
		case event, ok := <-raw:
			if !ok {
				return
			}
			if event.Kind != hook.KeyHold {
				continue
			}
			select {
			case out <- keyEventFromHook(event):
			case <-stop:
				return
			default:
			}
		}
	}
}

// keyEventFromHook converts a gohook key press to a KeyEvent whose Code is a
// Windows virtual-key code on every platform.
func keyEventFromHook(event hook.Event) model.KeyEvent {
	key := model.KeyEvent{}
	if vk, ok := virtualKey(event.Rawcode); ok {
		key.Code = vk
		key.HasCode = true
		key.Name = virtualKeyName(vk)
		key.Char = virtualKeyChar(vk)
	}
	if event.Keychar != 0 && event.Keychar != charUndefined && unicode.IsPrint(event.Keychar) {
		key.Char = event.Keychar
	}
	return key
}
