package hotkey

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clickclick/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeySource struct {
	mu       sync.Mutex
	events   chan model.KeyEvent
	running  bool
	starts   int
	stops    int
	startErr error
}

func (source *fakeKeySource) Start() (<-chan model.KeyEvent, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.startErr != nil {
		return nil, source.startErr
	}
	if source.running {
		return nil, errors.New("key source already started")
	}
	source.running = true
	source.starts++
	source.events = make(chan model.KeyEvent, 16)
	return source.events, nil
}

func (source *fakeKeySource) Stop() error {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.running = false
	source.stops++
	return nil
}

// end closes the subscription as if the OS hook had died.
func (source *fakeKeySource) end() {
	source.mu.Lock()
	defer source.mu.Unlock()
	close(source.events)
}

func (source *fakeKeySource) send(event model.KeyEvent) {
	source.mu.Lock()
	events := source.events
	source.mu.Unlock()
	events <- event
}

func (source *fakeKeySource) counts() (int, int) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.starts, source.stops
}

func TestMatchesPlatformCode(t *testing.T) {
	binding := model.PlatformCodeBinding(101)
	assert.True(t, Matches(model.KeyEvent{Code: 101, HasCode: true}, binding))
	assert.False(t, Matches(model.KeyEvent{Code: 102, HasCode: true}, binding))
	assert.False(t, Matches(model.KeyEvent{Char: '5'}, binding))
	assert.False(t, Matches(model.KeyEvent{Code: 101}, binding))
}

func TestMatchesCharacterCaseInsensitive(t *testing.T) {
	binding := model.CharacterBinding('q')
	assert.True(t, Matches(model.KeyEvent{Char: 'Q'}, binding))
	assert.True(t, Matches(model.KeyEvent{Code: 81, HasCode: true, Char: 'q'}, binding))
	assert.True(t, Matches(model.KeyEvent{Name: "q"}, binding))
	assert.False(t, Matches(model.KeyEvent{Char: 'w'}, binding))
	assert.False(t, Matches(model.KeyEvent{Char: '\x01'}, binding))
	assert.False(t, Matches(model.KeyEvent{Name: "quit"}, binding))
}

func TestMatchesSymbolicName(t *testing.T) {
	binding := model.SymbolicNameBinding("F8")
	assert.True(t, Matches(model.KeyEvent{Name: "f8"}, binding))
	assert.False(t, Matches(model.KeyEvent{Name: "f9"}, binding))
	assert.False(t, Matches(model.KeyEvent{}, binding))
}

func TestUnboundNeverMatches(t *testing.T) {
	events := []model.KeyEvent{
		{},
		{Code: 101, HasCode: true},
		{Char: 'a'},
		{Name: "space"},
	}
	for _, event := range events {
		assert.False(t, Matches(event, model.HotkeyBinding{}))
		assert.False(t, Matches(event, model.HotkeyBinding{Kind: model.BindingCharacter}))
	}
}

func TestListenerInvokesToggleOnMatch(t *testing.T) {
	source := &fakeKeySource{}
	var toggles atomic.Int32
	listener := NewListener(source, model.DefaultHotkey(), func() { toggles.Add(1) }, nil)

	require.NoError(t, listener.Start())
	defer listener.Stop()

	source.send(model.KeyEvent{Code: 102, HasCode: true})
	source.send(model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true})

	require.Eventually(t, func() bool { return toggles.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), toggles.Load())
}

func TestListenerStartStopIdempotent(t *testing.T) {
	source := &fakeKeySource{}
	listener := NewListener(source, model.DefaultHotkey(), nil, nil)

	require.NoError(t, listener.Stop())
	require.NoError(t, listener.Start())
	require.NoError(t, listener.Start())
	require.NoError(t, listener.Stop())
	require.NoError(t, listener.Stop())
	require.NoError(t, listener.Start())
	require.NoError(t, listener.Stop())

	starts, stops := source.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, stops)
	assert.False(t, listener.Running())
}

func TestListenerResubscribesAfterSourceCloses(t *testing.T) {
	source := &fakeKeySource{}
	var toggles atomic.Int32
	listener := NewListener(source, model.DefaultHotkey(), func() { toggles.Add(1) }, nil)

	require.NoError(t, listener.Start())
	source.end()
	require.Eventually(t, func() bool {
		_, stops := source.counts()
		return !listener.Running() && stops == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, listener.Stop())
	require.NoError(t, listener.Start())
	defer listener.Stop()

	starts, _ := source.counts()
	assert.Equal(t, 2, starts)
	assert.True(t, listener.Running())

	source.send(model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true})
	require.Eventually(t, func() bool { return toggles.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestListenerStartError(t *testing.T) {
	source := &fakeKeySource{startErr: errors.New("no hook")}
	listener := NewListener(source, model.DefaultHotkey(), nil, nil)

	err := listener.Start()
	assert.ErrorIs(t, err, source.startErr)
	assert.False(t, listener.Running())
}

func TestSetHotkeyAppliesToNextEvent(t *testing.T) {
	source := &fakeKeySource{}
	var toggles atomic.Int32
	listener := NewListener(source, model.DefaultHotkey(), func() { toggles.Add(1) }, nil)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	listener.SetHotkey(model.CharacterBinding('k'))
	assert.Equal(t, model.CharacterBinding('k'), listener.Hotkey())

	source.send(model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true})
	source.send(model.KeyEvent{Char: 'K'})

	require.Eventually(t, func() bool { return toggles.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCallbackPanicDoesNotStopListener(t *testing.T) {
	source := &fakeKeySource{}
	var calls atomic.Int32
	listener := NewListener(source, model.DefaultHotkey(), func() {
		if calls.Add(1) == 1 {
			panic("toggle exploded")
		}
	}, nil)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	event := model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true}
	source.send(event)
	source.send(event)

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, listener.Running())
}

func TestCaptureNextReturnsEventWithoutToggling(t *testing.T) {
	source := &fakeKeySource{}
	var toggles atomic.Int32
	listener := NewListener(source, model.DefaultHotkey(), func() { toggles.Add(1) }, nil)
	require.NoError(t, listener.Start())
	defer listener.Stop()

	result := make(chan model.KeyEvent, 1)
	go func() {
		event, err := listener.CaptureNext(context.Background())
		if err == nil {
			result <- event
		}
	}()

	want := model.KeyEvent{Code: model.NumpadFiveCode, HasCode: true}
	require.Eventually(t, func() bool {
		listener.mu.Lock()
		defer listener.mu.Unlock()
		return listener.capture != nil
	}, time.Second, 5*time.Millisecond)
	source.send(want)

	select {
	case got := <-result:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("capture did not return")
	}
	assert.Equal(t, int32(0), toggles.Load())
}

func TestCaptureNextHonoursContext(t *testing.T) {
	source := &fakeKeySource{}
	listener := NewListener(source, model.DefaultHotkey(), nil, nil)

	_, err := listener.CaptureNext(context.Background())
	assert.ErrorIs(t, err, ErrNotListening)

	require.NoError(t, listener.Start())
	defer listener.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = listener.CaptureNext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
