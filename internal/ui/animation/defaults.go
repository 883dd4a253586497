package animation

import "time"

// DefaultConfig returns the indicator refresh cadence.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 120 * time.Millisecond,
		MinFrames:     1,
	}
}
