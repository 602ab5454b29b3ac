// Package config loads, normalizes, and validates tsvoice configuration.
//
// Configuration comes from a TOML file (default ~/.config/tsvoice/config.toml)
// with per-field environment fallbacks (TSVOICE_*) applied during
// normalization. The loaded Config is immutable for the life of the process:
// the daemon reads it once at startup and hands it to the session manager and
// IPC server.
package config
