package main

import (
	"github.com/spf13/cobra"

	"tsvoice/internal/ipc"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var listenFlag string

	ctx := newCommandContext(&configFlag, &listenFlag)

	rootCmd := &cobra.Command{
		Use:           "tsvoice",
		Short:         "Control a tsvoiced voice-session daemon",
		Version:       ipc.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&listenFlag, "listen", "", "Daemon RPC address (host:port)")

	rootCmd.AddCommand(newDaemonCommand(ctx))
	for _, cmd := range newDaemonControlCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newStatusCommand(ctx))
	for _, cmd := range newPlaybackCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
