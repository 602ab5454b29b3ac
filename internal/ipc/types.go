package ipc

import (
	"errors"
	"time"
)

// Version is the control protocol version reported by Ping.
const Version = "0.1.0"

// ErrEventStreamUnimplemented is returned by SubscribeEvents; the daemon
// registers the method but never serves a feed.
var ErrEventStreamUnimplemented = errors.New("event stream not implemented")

// PingRequest checks daemon reachability.
type PingRequest struct{}

// PingResponse carries the protocol version.
type PingResponse struct {
	Version string `json:"version"`
}

// PlayRequest starts playback of a track.
type PlayRequest struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
}

// PauseRequest suspends active playback.
type PauseRequest struct{}

// ResumeRequest continues paused playback.
type ResumeRequest struct{}

// StopRequest clears the current track.
type StopRequest struct{}

// SkipRequest advances past the current track. With no queue this clears
// playback exactly like StopRequest.
type SkipRequest struct{}

// SetVolumeRequest adjusts the playback volume.
type SetVolumeRequest struct {
	VolumePercent int `json:"volume_percent"`
}

// CommandResponse reports the outcome of a playback control command.
type CommandResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// GetStatusRequest fetches the playback snapshot.
type GetStatusRequest struct{}

// GetStatusResponse reports playback intent only; backend connectivity is
// deliberately absent and lives in DaemonStatusResponse.
type GetStatusResponse struct {
	State               string `json:"state"`
	NowPlayingTitle     string `json:"now_playing_title"`
	NowPlayingSourceURL string `json:"now_playing_source_url"`
	VolumePercent       int    `json:"volume_percent"`
}

// SubscribeEventsRequest asks for an event feed.
type SubscribeEventsRequest struct {
	Filter string `json:"filter"`
}

// SubscribeEventsResponse is never populated; the subscription call always
// fails.
type SubscribeEventsResponse struct{}

// ShutdownRequest begins daemon termination.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges a shutdown request.
type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}

// DaemonStatusRequest fetches daemon runtime information.
type DaemonStatusRequest struct{}

// BackendStatus describes the voice backend session.
type BackendStatus struct {
	State          string `json:"state"`
	ConnectStatus  string `json:"connect_status"`
	SessionHandle  uint64 `json:"session_handle"`
	IdentitySource string `json:"identity_source"`
}

// DaemonStatusResponse reports daemon process and backend details.
type DaemonStatusResponse struct {
	Running    bool          `json:"running"`
	PID        int           `json:"pid"`
	Version    string        `json:"version"`
	ListenAddr string        `json:"listen_addr"`
	LockPath   string        `json:"lock_path"`
	LogDir     string        `json:"log_dir"`
	StartedAt  time.Time     `json:"started_at"`
	Monitoring bool          `json:"monitoring"`
	Backend    BackendStatus `json:"backend"`
}
