package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSecondsUsesOneDecimal(t *testing.T) {
	assert.Equal(t, "1.0", formatSeconds(1))
	assert.Equal(t, "0.1", formatSeconds(0.1))
	assert.Equal(t, "2.5", formatSeconds(2.5))
}

func TestHistoryText(t *testing.T) {
	assert.Equal(t, "0 sessions, 0 clicks", historyText(0, 0, 0))
	assert.Equal(t, "3 sessions, 42 clicks, 2 failed", historyText(3, 42, 2))
}

func TestOffsetText(t *testing.T) {
	assert.Equal(t, "±3 px", offsetText(3))
}
