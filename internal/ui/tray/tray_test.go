package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Start clicking", ToggleLabel(false))
	assert.Equal(t, "Stop clicking", ToggleLabel(true))
}

func TestManagerWithoutDriverTracksState(t *testing.T) {
	toggles := 0
	manager := New(nil, Callbacks{OnToggle: func() { toggles++ }})

	assert.False(t, manager.Active())
	assert.Equal(t, "Status: stopped", manager.Status())
	assert.Equal(t, "Start clicking", manager.toggleItem.Label)

	manager.SetActive(true, "Status: clicking at (10, 20)")
	assert.True(t, manager.Active())
	assert.Equal(t, "Status: clicking at (10, 20)", manager.Status())
	assert.Equal(t, "Stop clicking", manager.toggleItem.Label)

	manager.toggleItem.Action()
	assert.Equal(t, 1, toggles)
}

func TestStandaloneBeforeReadyOnlyStoresState(t *testing.T) {
	standalone := NewStandalone(Callbacks{})

	standalone.SetActive(true, "Status: clicking at (1, 1)")

	assert.True(t, standalone.active)
	assert.Equal(t, "Status: clicking at (1, 1)", standalone.status)
}
