package session

import (
	"log/slog"
	"sync"

	"tsvoice/internal/logging"
	"tsvoice/internal/ts3"
)

// Dispatcher routes client library callbacks to the session that
// registered the connection handle. Sessions register after spawning
// their handler and deregister during teardown; events for handles
// with no registration produce a log line and nothing else.
type Dispatcher struct {
	logger *slog.Logger

	mu      sync.Mutex
	targets map[ts3.Handle]*Manager
}

// NewDispatcher returns an empty dispatch table.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger:  logging.NewComponentLogger(logger, "dispatch"),
		targets: make(map[ts3.Handle]*Manager),
	}
}

// Callbacks returns the callback set handed to the client library at
// initialization.
func (d *Dispatcher) Callbacks() ts3.Callbacks {
	return ts3.Callbacks{
		ConnectStatusChanged: d.connectStatusChanged,
		TextMessage:          d.textMessage,
		ServerError:          d.serverError,
	}
}

func (d *Dispatcher) register(handle ts3.Handle, m *Manager) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets[handle] = m
}

func (d *Dispatcher) deregister(handle ts3.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.targets, handle)
}

func (d *Dispatcher) lookup(handle ts3.Handle) *Manager {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.targets[handle]
}

// connectStatusChanged logs every transition, registered or not, then
// forwards the event to the owning session.
func (d *Dispatcher) connectStatusChanged(handle ts3.Handle, status ts3.ConnectStatus, code ts3.ErrorCode) {
	attrs := []logging.Attr{
		logging.Uint64(logging.FieldSessionHandle, uint64(handle)),
		logging.String("status", status.String()),
	}
	if code.Ok() {
		d.logger.Info("connection status changed", logging.Args(attrs...)...)
	} else {
		attrs = append(attrs, logging.String(logging.FieldErrorCode, code.String()))
		d.logger.Warn("connection status changed", logging.Args(attrs...)...)
	}

	if target := d.lookup(handle); target != nil {
		target.handleConnectStatus(status)
	}
}

func (d *Dispatcher) textMessage(handle ts3.Handle, targetMode int, fromName, fromUID, message string) {
	d.logger.Info("text message received",
		logging.Uint64(logging.FieldSessionHandle, uint64(handle)),
		logging.Int("target_mode", targetMode),
		logging.String("from", fromName),
		logging.String("from_uid", fromUID),
		logging.String("message", message))
}

func (d *Dispatcher) serverError(handle ts3.Handle, code ts3.ErrorCode, message, returnCode, extra string) {
	attrs := []logging.Attr{
		logging.Uint64(logging.FieldSessionHandle, uint64(handle)),
		logging.String(logging.FieldErrorCode, code.String()),
		logging.String("message", message),
	}
	if returnCode != "" {
		attrs = append(attrs, logging.String(logging.FieldCorrelationID, returnCode))
	}
	if extra != "" {
		attrs = append(attrs, logging.String("extra", extra))
	}
	if code.Ok() {
		d.logger.Info("server result", logging.Args(attrs...)...)
	} else {
		d.logger.Warn("server error", logging.Args(attrs...)...)
	}

	if target := d.lookup(handle); target != nil {
		target.handleServerError(code, message, returnCode)
	}
}
