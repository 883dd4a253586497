package controller

import (
	"testing"

	"clickclick/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestEventSummary(t *testing.T) {
	assert.Equal(t, "Status: stopped", Event{State: StateIdle, Position: model.Point{X: 1, Y: 2}, HasPosition: true}.Summary())
	assert.Equal(t, "Status: clicking", Event{State: StateActive}.Summary())
	assert.Equal(t, "Status: clicking at (100, 200)", Event{State: StateActive, Position: model.Point{X: 100, Y: 200}, HasPosition: true}.Summary())
}
