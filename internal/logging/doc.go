// Package logging assembles structured slog loggers and formatting helpers
// used across tsvoice components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes standardized field keys so session, daemon,
// and IPC code tag log lines the same way. Console output is serialized by a
// single mutex so concurrent backend callbacks and RPC handlers never
// interleave multi-field lines. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape as the rest of the system.
package logging
