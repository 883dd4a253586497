package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"clickclick/internal/core/model"
	"clickclick/internal/platform"
	"clickclick/internal/storage"
)

func historyDir(configDir string) string {
	return filepath.Join(configDir, "history")
}

func execHistory(stdout io.Writer, limit int) error {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return err
	}
	history, err := storage.OpenHistory(historyDir(configDir))
	if err != nil {
		return fmt.Errorf("%w (is ClickClick running?)", err)
	}
	defer history.Close()

	sessions, err := history.Recent(limit)
	if err != nil {
		return err
	}
	totals, err := history.Totals()
	if err != nil {
		return err
	}
	return printHistory(stdout, sessions, totals)
}

func printHistory(stdout io.Writer, sessions []model.Session, totals storage.Totals) error {
	writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "STARTED\tDURATION\tPOSITION\tCLICKS\tFAILED")
	for _, session := range sessions {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\n",
			session.Started.Local().Format(time.DateTime),
			session.Duration().Round(time.Second),
			session.Position,
			session.Clicks,
			session.Failures,
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "\n%d sessions, %d clicks, %d failed, %s active\n",
		totals.Sessions, totals.Clicks, totals.Failures, totals.Active.Round(time.Second))
	return err
}
