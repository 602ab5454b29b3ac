package session

import (
	"log/slog"

	"tsvoice/internal/config"
	"tsvoice/internal/logging"
	"tsvoice/internal/ts3"
)

// deviceCandidate is one (mode, device) pair to try when opening audio.
type deviceCandidate struct {
	tier   string
	mode   string
	device string
}

// negotiateDevices opens playback and capture devices ahead of the
// connection attempt. Every failure is logged and tolerated; a session
// without audio devices still connects.
func negotiateDevices(client ts3.Client, handle ts3.Handle, devices config.Devices, logger *slog.Logger) {
	openAudioDevice(client, handle, ts3.Playback, devices.PlaybackMode, devices.PlaybackID, logger)
	openAudioDevice(client, handle, ts3.Capture, devices.CaptureMode, devices.CaptureID, logger)
}

// openAudioDevice walks the candidate chain for one direction: the
// configured override when present, the default device by ID, the
// default device by name, and last the system default with empty mode
// and device. The first successful open wins.
func openAudioDevice(client ts3.Client, handle ts3.Handle, kind ts3.DeviceKind, overrideMode, overrideID string, logger *slog.Logger) {
	mode, err := client.DefaultMode(kind)
	if err != nil {
		logger.Warn("default mode lookup failed",
			logging.String(logging.FieldDeviceKind, kind.String()),
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err))
		mode = ""
	}

	device, err := client.DefaultDevice(kind, mode)
	if err != nil {
		logger.Warn("default device lookup failed",
			logging.String(logging.FieldDeviceKind, kind.String()),
			logging.String("mode", mode),
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err))
		device = ts3.Device{}
	}

	candidates := make([]deviceCandidate, 0, 4)
	if overrideID != "" {
		candidateMode := overrideMode
		if candidateMode == "" {
			candidateMode = mode
		}
		candidates = append(candidates, deviceCandidate{tier: "configured", mode: candidateMode, device: overrideID})
	}
	candidates = append(candidates,
		deviceCandidate{tier: "default_id", mode: mode, device: device.ID},
		deviceCandidate{tier: "default_name", mode: mode, device: device.Name},
		deviceCandidate{tier: "system_default"},
	)

	tried := make(map[[2]string]bool, len(candidates))
	for _, candidate := range candidates {
		key := [2]string{candidate.mode, candidate.device}
		if tried[key] {
			continue
		}
		tried[key] = true

		if err := client.OpenDevice(handle, kind, candidate.mode, candidate.device); err != nil {
			logger.Warn("open device failed",
				logging.String(logging.FieldDeviceKind, kind.String()),
				logging.String("tier", candidate.tier),
				logging.String("device", candidate.device),
				logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
				logging.Error(err))
			continue
		}

		logger.Info("audio device opened",
			logging.String(logging.FieldDeviceKind, kind.String()),
			logging.String("tier", candidate.tier),
			logging.String("mode", candidate.mode),
			logging.String("device", candidate.device))
		return
	}

	logging.WarnWithContext(logger, "no usable audio device", "audio_device_unavailable",
		logging.String(logging.FieldDeviceKind, kind.String()),
		logging.String(logging.FieldImpact, "session continues without "+kind.String()+" audio"))
}
