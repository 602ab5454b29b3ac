// Package session owns the voice backend lifecycle: bringing the
// client library up, resolving the client identity, negotiating audio
// devices, connecting to the configured server, and tearing everything
// down again.
//
// Startup is deliberately tolerant. A missing client library or an
// unreachable server degrades the daemon to command handling without a
// voice connection; only identity resolution and connection handler
// allocation abort startup. Library callbacks are routed through a
// Dispatcher keyed by connection handle, so events for handles that
// were never registered, or already torn down, are dropped after
// logging.
package session
