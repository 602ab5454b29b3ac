package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tsvoice/internal/daemonrun"
)

// newDaemonCommand runs the daemon in the foreground. `tsvoice start`
// launches this command detached.
func newDaemonCommand(ctx *commandContext) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the tsvoiced daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var listen string
			if ctx.listenFlag != nil {
				listen = strings.TrimSpace(*ctx.listenFlag)
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
				Listen:   listen,
				LogLevel: logLevel,
			})
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	return cmd
}
