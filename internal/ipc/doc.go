// Package ipc exposes the daemon over JSON-RPC TCP and ships the matching
// client used by the CLI.
//
// It owns listener lifecycle management and the request/response DTOs of the
// control protocol. The server embeds the daemon while the client applies a
// dial timeout so CLI commands fail fast when the daemon is offline.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
