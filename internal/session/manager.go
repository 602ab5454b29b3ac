package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"tsvoice/internal/config"
	"tsvoice/internal/logging"
	"tsvoice/internal/ts3"
)

// BackendState describes where the voice backend sits in its lifecycle.
type BackendState string

const (
	BackendStopped      BackendState = "stopped"
	BackendUnavailable  BackendState = "unavailable"
	BackendFailed       BackendState = "failed"
	BackendDisconnected BackendState = "disconnected"
	BackendConnecting   BackendState = "connecting"
	BackendConnected    BackendState = "connected"
)

// Snapshot is a point-in-time view of the backend session.
type Snapshot struct {
	State          BackendState
	ConnectStatus  ts3.ConnectStatus
	Handle         ts3.Handle
	IdentitySource IdentitySource
}

// Manager drives one voice backend session from library init through
// teardown.
type Manager struct {
	cfg      *config.Config
	client   ts3.Client
	dispatch *Dispatcher
	logger   *slog.Logger

	mu             sync.Mutex
	started        bool
	initialized    bool
	handle         ts3.Handle
	state          BackendState
	lastStatus     ts3.ConnectStatus
	identitySource IdentitySource
	moveReturnCode string
}

// NewManager wires a manager for the given backend client. The
// dispatcher receives this manager's handle once a connection handler
// exists.
func NewManager(cfg *config.Config, client ts3.Client, dispatch *Dispatcher, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		client:   client,
		dispatch: dispatch,
		logger:   logging.NewComponentLogger(logger, "session"),
		state:    BackendStopped,
	}
}

// Start brings the backend session up. Degraded outcomes return nil: an
// unusable client library or a failed connection attempt leaves the
// daemon handling commands without a voice connection. Only identity
// resolution and connection handler allocation are fatal.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return errors.New("session already started")
	}
	m.started = true
	m.mu.Unlock()

	if err := m.cfg.EnsureDirectories(); err != nil {
		m.logger.Warn("directory setup incomplete", logging.Error(err))
	}

	err := m.client.Init(ts3.InitOptions{
		LogDir:      m.cfg.Paths.LogDir,
		ResourceDir: m.cfg.Paths.ResourceDir,
		Callbacks:   m.dispatch.Callbacks(),
	})
	if err != nil {
		logging.WarnWithContext(m.logger, "voice backend unavailable", "backend_init_failed",
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "continuing without a voice connection"))
		m.setState(BackendUnavailable)
		return nil
	}
	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()

	identity, source, err := resolveIdentity(m.cfg, m.client, m.logger)
	if err != nil {
		m.setState(BackendFailed)
		return fmt.Errorf("resolve identity: %w", err)
	}
	m.mu.Lock()
	m.identitySource = source
	m.mu.Unlock()

	handle, err := m.client.SpawnConnection()
	if err != nil {
		m.setState(BackendFailed)
		return fmt.Errorf("spawn connection handler: %w", err)
	}
	m.mu.Lock()
	m.handle = handle
	m.mu.Unlock()
	m.dispatch.register(handle, m)

	negotiateDevices(m.client, handle, m.cfg.Devices, m.logger)

	params := ts3.ConnectParams{
		Identity:        identity,
		Host:            m.cfg.Server.Host,
		Port:            m.cfg.Server.Port,
		Nickname:        m.cfg.Server.Nickname,
		ChannelPath:     m.cfg.ChannelPathSegments(),
		ChannelPassword: m.cfg.Server.ChannelPassword,
		ServerPassword:  m.cfg.Server.ServerPassword,
	}
	if err := m.client.StartConnection(handle, params); err != nil {
		logging.WarnWithContext(m.logger, "voice connection failed", "backend_connect_failed",
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "continuing without a voice connection"))
		m.setState(BackendDisconnected)
		return nil
	}

	m.setState(BackendConnecting)
	m.logger.Info("connecting to voice server",
		logging.String("host", params.Host),
		logging.Int("port", params.Port),
		logging.String("nickname", params.Nickname))
	return nil
}

// Stop tears the session down in reverse order of startup. Safe to call
// multiple times; only the first call after a successful library init
// performs the teardown.
func (m *Manager) Stop() {
	m.mu.Lock()
	initialized := m.initialized
	handle := m.handle
	m.initialized = false
	m.started = false
	m.handle = 0
	m.moveReturnCode = ""
	m.mu.Unlock()

	if !initialized {
		m.setState(BackendStopped)
		return
	}

	if handle != 0 {
		// Devices may never have been opened; close failures are expected.
		_ = m.client.CloseDevice(handle, ts3.Capture)
		_ = m.client.CloseDevice(handle, ts3.Playback)
		if err := m.client.StopConnection(handle, ""); err != nil {
			m.logger.Warn("stop connection", logging.Error(err))
		}
		m.dispatch.deregister(handle)
		if err := m.client.DestroyConnection(handle); err != nil {
			m.logger.Warn("destroy connection handler", logging.Error(err))
		}
	}

	if err := m.client.Shutdown(); err != nil {
		m.logger.Warn("shut down client library", logging.Error(err))
	}
	m.setState(BackendStopped)
	m.logger.Info("session stopped")
}

// Snapshot reports the current backend state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:          m.state,
		ConnectStatus:  m.lastStatus,
		Handle:         m.handle,
		IdentitySource: m.identitySource,
	}
}

func (m *Manager) setState(state BackendState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// handleConnectStatus tracks connectivity and joins the configured
// channel once the connection is established.
func (m *Manager) handleConnectStatus(status ts3.ConnectStatus) {
	m.mu.Lock()
	m.lastStatus = status
	switch status {
	case ts3.StatusDisconnected:
		m.state = BackendDisconnected
		m.moveReturnCode = ""
	case ts3.StatusConnectionEstablished:
		m.state = BackendConnected
	default:
		m.state = BackendConnecting
	}
	handle := m.handle
	m.mu.Unlock()

	if status != ts3.StatusConnectionEstablished {
		return
	}
	channelID := m.cfg.Server.ChannelID
	if channelID == 0 {
		return
	}

	clientID, err := m.client.ClientID(handle)
	if err != nil {
		logging.WarnWithContext(m.logger, "own client id unavailable", "channel_move_skipped",
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "staying in the default channel"))
		return
	}

	returnCode := uuid.NewString()
	m.mu.Lock()
	m.moveReturnCode = returnCode
	m.mu.Unlock()

	if err := m.client.RequestClientMove(handle, clientID, channelID, m.cfg.Server.ChannelPassword, returnCode); err != nil {
		m.mu.Lock()
		m.moveReturnCode = ""
		m.mu.Unlock()
		logging.WarnWithContext(m.logger, "channel move request failed", "channel_move_failed",
			logging.Uint64("channel_id", channelID),
			logging.String(logging.FieldErrorCode, ts3.CodeOf(err).String()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "staying in the default channel"))
		return
	}

	m.logger.Info("channel move requested",
		logging.Uint64("channel_id", channelID),
		logging.String(logging.FieldCorrelationID, returnCode))
}

// handleServerError resolves the pending channel move when the server
// answers with our correlation code.
func (m *Manager) handleServerError(code ts3.ErrorCode, message, returnCode string) {
	if returnCode == "" {
		return
	}
	m.mu.Lock()
	matched := m.moveReturnCode != "" && m.moveReturnCode == returnCode
	if matched {
		m.moveReturnCode = ""
	}
	m.mu.Unlock()
	if !matched {
		return
	}

	if code.Ok() {
		m.logger.Info("channel move confirmed", logging.String(logging.FieldCorrelationID, returnCode))
		return
	}
	logging.WarnWithContext(m.logger, "channel move rejected", "channel_move_rejected",
		logging.String(logging.FieldErrorCode, code.String()),
		logging.String("detail", message),
		logging.String(logging.FieldCorrelationID, returnCode),
		logging.String(logging.FieldImpact, "staying in the default channel"))
}
