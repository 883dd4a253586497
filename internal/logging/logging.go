// Package logging builds the process logger and the narrow Logger interface
// the core packages depend on.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger, or a discarding Logger when logger is nil.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return nopLogger{}
	}
	return logger
}

// Options configures New.
type Options struct {
	Level   slog.Level
	NoColor bool
}

// New returns a tint-formatted slog logger writing to w.
func New(w io.Writer, options Options) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      options.Level,
		TimeFormat: time.TimeOnly,
		NoColor:    options.NoColor,
	}))
}

// ParseLevel maps debug, info, warn/warning and error to slog levels. An
// empty value is info.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
}

// Err wraps an error as a log attribute.
func Err(err error) slog.Attr {
	return tint.Err(err)
}

// SwitchWriter forwards writes to an underlying writer while enabled and
// discards them otherwise.
type SwitchWriter struct {
	w       io.Writer
	enabled atomic.Bool
}

// NewSwitchWriter wraps w.
func NewSwitchWriter(w io.Writer, enabled bool) *SwitchWriter {
	writer := &SwitchWriter{w: w}
	writer.enabled.Store(enabled)
	return writer
}

// SetEnabled turns forwarding on or off.
func (writer *SwitchWriter) SetEnabled(enabled bool) {
	writer.enabled.Store(enabled)
}

func (writer *SwitchWriter) Write(p []byte) (int, error) {
	if !writer.enabled.Load() {
		return len(p), nil
	}
	return writer.w.Write(p)
}
