package daemon

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"tsvoice/internal/logging"
)

// audioMonitor listens for udev netlink events from the sound subsystem and
// logs device hotplug activity. It never mutates session state: negotiated
// devices stay as they are until the session is restarted.
type audioMonitor struct {
	logger  *slog.Logger
	handler func(action, device string)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// newAudioMonitor creates a monitor that observes sound device hotplug events.
func newAudioMonitor(logger *slog.Logger) *audioMonitor {
	return &audioMonitor{
		logger: logging.NewComponentLogger(logger, "audio-monitor"),
	}
}

// Start begins listening for udev netlink events.
func (m *audioMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; audio hotplug events will not be logged",
			logging.Error(err),
			logging.String(logging.FieldEventType, "netlink_connect_failed"),
			logging.String(logging.FieldErrorHint, "ensure the daemon has permission to access netlink sockets"),
			logging.String(logging.FieldImpact, "audio device changes will not appear in logs"),
		)
		return nil // Non-fatal - the daemon can still serve without hotplug visibility
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	// Pass quit channel to goroutine to avoid reading m.quit without lock
	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("audio monitor started",
		logging.String(logging.FieldEventType, "audio_monitor_started"),
	)

	return nil
}

// Stop shuts down the audio monitor.
func (m *audioMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}

	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}

	m.running = false

	m.logger.Info("audio monitor stopped",
		logging.String(logging.FieldEventType, "audio_monitor_stopped"),
	)
}

// Running reports whether the audio monitor is active.
func (m *audioMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// monitorLoop reads netlink events and logs sound device changes.
func (m *audioMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	matcher := m.buildMatcher()

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, matcher)

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(uevent)
		case err := <-errs:
			m.logger.Warn("audio monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "audio_monitor_error"),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "hotplug visibility may be affected"),
			)
		}
	}
}

// buildMatcher creates a matcher for sound device hotplug events.
// Matches: SUBSYSTEM=sound, ACTION=add|remove
func (m *audioMonitor) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "sound",
		},
	})
	return rules
}

// handleEvent logs a matched uevent.
func (m *audioMonitor) handleEvent(uevent netlink.UEvent) {
	devname := m.extractDeviceName(uevent)
	if devname == "" {
		m.logger.Debug("ignoring event without device name",
			logging.String("action", string(uevent.Action)),
			logging.String("kobj", uevent.KObj),
		)
		return
	}

	msg := "audio device changed"
	eventType := "audio_device_changed"
	switch uevent.Action {
	case netlink.ADD:
		msg = "audio device added"
		eventType = "audio_device_added"
	case netlink.REMOVE:
		msg = "audio device removed"
		eventType = "audio_device_removed"
	}

	m.logger.Info(msg,
		logging.String(logging.FieldEventType, eventType),
		logging.String("device", devname),
		logging.String("action", string(uevent.Action)),
	)

	if m.handler != nil {
		m.handler(string(uevent.Action), devname)
	}
}

// extractDeviceName gets the device node or kernel object name from a uevent.
// Sound card kobjects (e.g. /devices/.../sound/card1) carry no DEVNAME.
func (m *audioMonitor) extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}

	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
