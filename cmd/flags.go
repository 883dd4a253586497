package main

import (
	"context"
	"flag"
	"io"

	"clickclick/internal/ui/preferences"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envPrefix = "CLICKCLICK"

// runOptions are the root command flags. Flags that were not given leave
// the saved settings untouched.
type runOptions struct {
	logLevel    string
	trayOnly    bool
	startActive bool
	minDelay    float64
	maxDelay    float64
	offset      int
	set         map[string]bool
}

func newRunFlags() (*flag.FlagSet, *runOptions) {
	fs := flag.NewFlagSet("clickclick", flag.ContinueOnError)
	options := &runOptions{}
	fs.StringVar(&options.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&options.trayOnly, "tray-only", false, "Run with a tray icon only, without windows")
	fs.BoolVar(&options.startActive, "start-active", false, "Lock the current cursor position and start clicking at launch")
	fs.Float64Var(&options.minDelay, "min-delay", 0, "Minimum delay between clicks in seconds (0.1-10)")
	fs.Float64Var(&options.maxDelay, "max-delay", 0, "Maximum delay between clicks in seconds (0.1-10)")
	fs.IntVar(&options.offset, "offset", 0, "Click offset radius in pixels (0-50)")
	return fs, options
}

// visited records which flags were set on the command line or environment.
func (options *runOptions) visited(fs *flag.FlagSet) {
	options.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		options.set[f.Name] = true
	})
}

// apply overrides settings with the flags that were set.
func (options runOptions) apply(settings preferences.Settings) preferences.Settings {
	if options.set["log-level"] {
		settings.LogLevel = options.logLevel
	}
	if options.set["min-delay"] {
		settings.MinDelay = options.minDelay
	}
	if options.set["max-delay"] {
		settings.MaxDelay = options.maxDelay
	}
	if options.set["offset"] {
		settings.OffsetRange = options.offset
	}
	return settings.Normalized()
}

func buildCLI(stdout io.Writer) *ffcli.Command {
	historyFlags := flag.NewFlagSet("clickclick history", flag.ContinueOnError)
	historyLimit := historyFlags.Int("n", 10, "Number of sessions to show")

	historyCmd := &ffcli.Command{
		Name:       "history",
		ShortUsage: "clickclick history [flags]",
		ShortHelp:  "Print recent click sessions",
		FlagSet:    historyFlags,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec: func(_ context.Context, _ []string) error {
			return execHistory(stdout, *historyLimit)
		},
	}

	rootFlags, options := newRunFlags()
	return &ffcli.Command{
		ShortUsage:  "clickclick [flags] [<subcommand>]",
		ShortHelp:   "Hotkey-toggled auto clicker",
		LongHelp:    "Press the hotkey (Numpad 5 by default) to lock the cursor position\nand start clicking; press it again to stop.",
		FlagSet:     rootFlags,
		Options:     []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Subcommands: []*ffcli.Command{historyCmd},
		Exec: func(ctx context.Context, _ []string) error {
			options.visited(rootFlags)
			return execRun(ctx, *options)
		},
	}
}
