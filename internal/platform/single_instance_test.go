package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceGuard(t *testing.T) {
	name := fmt.Sprintf("clickclick-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	woken := make(chan struct{}, 1)
	guard.Serve(func() { woken <- struct{}{} })
	require.NoError(t, NotifyRunningInstance(name))

	select {
	case <-woken:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not woken")
	}

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("clickclick")
	assert.Equal(t, port, portFromName("clickclick"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}
