package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tsvoice/internal/ipc"
)

func newPlaybackCommands(ctx *commandContext) []*cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play <title> [source-url]",
		Short: "Start playback of a track",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			sourceURL := ""
			if len(args) > 1 {
				sourceURL = args[1]
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Play(title, sourceURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Playing %q (%s)\n", title, resp.Message)
				return nil
			})
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause active playback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Pause(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Paused")
				return nil
			})
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume paused playback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Resume(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Resumed")
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop-playback",
		Short: "Stop playback and clear the current track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Stop(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Stopped")
				return nil
			})
		},
	}

	skipCmd := &cobra.Command{
		Use:   "skip",
		Short: "Skip the current track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Skip(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Skipped")
				return nil
			})
		},
	}

	volumeCmd := &cobra.Command{
		Use:   "volume <percent>",
		Short: "Set the playback volume (0-200)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("volume must be an integer, got %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetVolume(percent); err != nil {
					return err
				}
				status, err := client.GetStatus()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Volume set to %d%%\n", status.VolumePercent)
				return nil
			})
		},
	}

	return []*cobra.Command{playCmd, pauseCmd, resumeCmd, stopCmd, skipCmd, volumeCmd}
}
