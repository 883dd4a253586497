package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelWarn, NoColor: true})

	logger.Info("hidden")
	logger.Warn("click failed", Err(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "click failed")
	assert.Contains(t, out, "boom")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger := New(&bytes.Buffer{}, Options{})
	assert.Same(t, logger, OrNop(logger))
}

func TestSwitchWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewSwitchWriter(&buf, false)

	n, err := writer.Write([]byte("hidden"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Empty(t, buf.String())

	writer.SetEnabled(true)
	_, err = writer.Write([]byte("shown"))
	require.NoError(t, err)
	assert.Equal(t, "shown", buf.String())
}
