package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tsvoice/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lineCount int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent daemon log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			stdout := cmd.OutOrStdout()
			logPath := filepath.Join(cfg.Paths.LogDir, "tsvoiced.log")

			lines, offset, err := logs.Tail(logPath, lineCount)
			if err != nil {
				return err
			}
			if len(lines) == 0 && !follow {
				fmt.Fprintf(stdout, "No log output at %s\n", logPath)
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(stdout, line)
			}
			if !follow {
				return nil
			}

			ticker := time.NewTicker(250 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}
				var newLines []string
				newLines, offset, err = logs.ReadFrom(logPath, offset)
				if err != nil {
					return err
				}
				for _, line := range newLines {
					fmt.Fprintln(stdout, line)
				}
			}
		},
	}

	cmd.Flags().IntVarP(&lineCount, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new log lines")
	return cmd
}
