package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInBackgroundReturnsBeforeActionFinishes(t *testing.T) {
	release := make(chan struct{})
	var finished atomic.Bool
	action := inBackground(func() {
		<-release
		finished.Store(true)
	})

	returned := make(chan struct{})
	go func() {
		action()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("caller blocked on the action")
	}
	assert.False(t, finished.Load())

	close(release)
	require.Eventually(t, finished.Load, time.Second, 5*time.Millisecond)
}
