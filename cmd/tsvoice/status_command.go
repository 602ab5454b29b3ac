package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tsvoice/internal/ipc"
	"tsvoice/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon, voice backend, and playback status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			var daemonStatus *ipc.DaemonStatusResponse
			var playback *ipc.GetStatusResponse
			if client, err := ctx.dialClient(); err == nil {
				if resp, statusErr := client.DaemonStatus(); statusErr == nil {
					daemonStatus = resp
				}
				if resp, statusErr := client.GetStatus(); statusErr == nil {
					playback = resp
				}
				_ = client.Close()
			}

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			if daemonStatus == nil || !daemonStatus.Running {
				fmt.Fprintln(stdout, renderStatusLine("tsvoiced", statusWarn, "Not running (run `tsvoice start`)", colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("tsvoiced", statusOK,
					fmt.Sprintf("Running (pid %d, version %s)", daemonStatus.PID, daemonStatus.Version), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Listen address", statusInfo, daemonStatus.ListenAddr, colorize))
				if !daemonStatus.StartedAt.IsZero() {
					fmt.Fprintln(stdout, renderStatusLine("Uptime", statusInfo,
						time.Since(daemonStatus.StartedAt).Round(time.Second).String(), colorize))
				}
				fmt.Fprintln(stdout, renderStatusLine("Hotplug monitor", statusKindFromBool(daemonStatus.Monitoring),
					monitoringDetail(daemonStatus.Monitoring), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Voice backend", backendStatusKind(daemonStatus.Backend.State),
					backendDetail(daemonStatus.Backend), colorize))
			}
			fmt.Fprintln(stdout)

			if playback != nil {
				for _, line := range renderSectionHeader("Playback", colorize) {
					fmt.Fprintln(stdout, line)
				}
				rows := [][]string{
					{"State", playback.State},
					{"Title", playback.NowPlayingTitle},
					{"Source URL", playback.NowPlayingSourceURL},
					{"Volume", fmt.Sprintf("%d%%", playback.VolumePercent)},
				}
				fmt.Fprintln(stdout, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				fmt.Fprintln(stdout)
			}

			for _, line := range renderSectionHeader("Host Checks", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusWarn
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if probe := preflight.ProbeSoundCards(""); probe.Detected {
				fmt.Fprintln(stdout, renderStatusLine("Sound cards", statusOK, probe.CardsDetail(), colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Sound cards", statusInfo, "None detected", colorize))
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Client Library Resources", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, status := range preflight.CheckResources(cfg) {
				kind := statusError
				detail := status.Detail
				if status.Available {
					kind = statusOK
					detail = status.Path
				} else if status.Optional {
					kind = statusWarn
				}
				fmt.Fprintln(stdout, renderStatusLine(status.Name, kind, detail, colorize))
			}
			return nil
		},
	}
}

func statusKindFromBool(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusWarn
}

func monitoringDetail(active bool) string {
	if active {
		return "Netlink monitoring active"
	}
	return "Netlink unavailable"
}

func backendStatusKind(state string) statusKind {
	switch state {
	case "connected":
		return statusOK
	case "connecting":
		return statusInfo
	default:
		return statusWarn
	}
}

func backendDetail(backend ipc.BackendStatus) string {
	detail := backend.State
	if backend.ConnectStatus != "" && backend.ConnectStatus != backend.State {
		detail = fmt.Sprintf("%s (connect status: %s)", backend.State, backend.ConnectStatus)
	}
	if backend.SessionHandle != 0 {
		detail = fmt.Sprintf("%s, handle %d", detail, backend.SessionHandle)
	}
	if backend.IdentitySource != "" {
		detail = fmt.Sprintf("%s, identity from %s", detail, backend.IdentitySource)
	}
	return detail
}
