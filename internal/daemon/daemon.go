package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"tsvoice/internal/config"
	"tsvoice/internal/logging"
	"tsvoice/internal/playback"
	"tsvoice/internal/session"
	"tsvoice/internal/ts3"
)

// Daemon owns the voice session, the playback state machine, and the audio
// hotplug monitor, and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	client  ts3.Client
	logger  *slog.Logger
	session *session.Manager
	player  *playback.Player
	monitor *audioMonitor

	logPath  string
	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// Status represents daemon runtime information.
type Status struct {
	Running    bool
	PID        int
	ListenAddr string
	LockPath   string
	LogDir     string
	StartedAt  time.Time
	Monitoring bool
	Backend    session.Snapshot
}

// Option adjusts daemon construction.
type Option func(*Daemon)

// WithClient substitutes the voice backend implementation. The default is
// ts3.Unavailable, which serves builds without the native client library.
func WithClient(client ts3.Client) Option {
	return func(d *Daemon) {
		if client != nil {
			d.client = client
		}
	}
}

// New constructs a daemon with initialized collaborators.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "tsvoiced.lock")
	d := &Daemon{
		cfg:        cfg,
		client:     ts3.Unavailable{},
		logger:     logger,
		logPath:    filepath.Join(cfg.Paths.LogDir, "tsvoiced.log"),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
		shutdownCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	dispatch := session.NewDispatcher(logger)
	d.session = session.NewManager(cfg, d.client, dispatch, logger)
	d.player = playback.NewPlayer()
	d.monitor = newAudioMonitor(logger)
	return d, nil
}

// Start acquires the daemon lock and brings up the voice session. A session
// that cannot connect leaves the daemon running; only lock contention and
// double starts are errors.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		d.logger.Warn("directory setup incomplete", logging.Error(err))
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tsvoiced instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.session.Start(); err != nil {
		logging.WarnWithContext(d.logger, "voice session failed to start", "session_start_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "serving control requests without a voice connection"))
	}

	_ = d.monitor.Start(d.ctx)

	d.startedAt = time.Now()
	d.running.Store(true)
	d.logger.Info("tsvoiced daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop tears down the session and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.monitor.Stop()
	d.session.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("tsvoiced daemon stopped")
}

// RequestShutdown asks the serve loop to exit. Safe to call multiple times
// and from RPC handlers.
func (d *Daemon) RequestShutdown() {
	d.shutdownOnce.Do(func() {
		close(d.shutdownCh)
	})
}

// ShutdownRequested is closed once a shutdown has been requested.
func (d *Daemon) ShutdownRequested() <-chan struct{} {
	return d.shutdownCh
}

// Play replaces the current track and marks playback active.
func (d *Daemon) Play(track playback.Track) playback.Status {
	d.player.Play(track)
	return d.player.Status()
}

// Pause suspends active playback.
func (d *Daemon) Pause() playback.Status {
	d.player.Pause()
	return d.player.Status()
}

// Resume continues paused playback.
func (d *Daemon) Resume() playback.Status {
	d.player.Resume()
	return d.player.Status()
}

// StopPlayback clears the current track. Skipping is the same operation:
// with no queue there is nothing to advance to.
func (d *Daemon) StopPlayback() playback.Status {
	d.player.Stop()
	return d.player.Status()
}

// SetVolume applies a clamped volume level.
func (d *Daemon) SetVolume(percent int) playback.Status {
	d.player.SetVolume(percent)
	return d.player.Status()
}

// PlaybackStatus reports the current playback intent.
func (d *Daemon) PlaybackStatus() playback.Status {
	return d.player.Status()
}

// Backend reports the current voice session snapshot.
func (d *Daemon) Backend() session.Snapshot {
	return d.session.Snapshot()
}

// LogPath returns the path to the daemon log pointer file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:    d.running.Load(),
		PID:        os.Getpid(),
		ListenAddr: d.cfg.Service.Listen,
		LockPath:   d.lockPath,
		LogDir:     d.cfg.Paths.LogDir,
		StartedAt:  d.startedAt,
		Monitoring: d.monitor.Running(),
		Backend:    d.session.Snapshot(),
	}
}
