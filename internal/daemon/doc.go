// Package daemon coordinates the long-running tsvoice process and system
// integration points.
//
// It wires configuration, the voice session manager, the playback state
// machine, and the audio hotplug monitor into a single lifecycle with
// flock-based locking to prevent multiple instances. A failed voice session
// start degrades the daemon rather than stopping it: the control surface
// keeps serving while the backend is unavailable.
//
// Keep orchestration logic here: session and playback behavior live in their
// respective packages while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
