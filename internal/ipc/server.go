package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"tsvoice/internal/daemon"
	"tsvoice/internal/logging"
	"tsvoice/internal/playback"
)

// Server exposes daemon control via JSON-RPC over TCP.
type Server struct {
	addr      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer binds the RPC listener on the given TCP address.
func NewServer(ctx context.Context, addr string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("TSVoice", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		addr:      addr,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Addr returns the bound listener address. This differs from the configured
// address when it requested port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("RPC server listening", logging.String("listen_addr", s.Addr()))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "rpc_accept_failed"),
					logging.String(logging.FieldImpact, "control clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "check the listen address and restart the daemon if needed"))
				continue
			}
			connID := uuid.NewString()
			s.logger.Debug("client connected",
				logging.String("conn_id", connID),
				logging.String("remote_addr", conn.RemoteAddr().String()))
			s.wg.Add(1)
			go func(c net.Conn, id string) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
				s.logger.Debug("client disconnected", logging.String("conn_id", id))
			}(conn, connID)
		}
	}()
}

// Close stops the listener and waits for in-flight connections.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Ping(_ PingRequest, resp *PingResponse) error {
	resp.Version = Version
	return nil
}

func (s *service) Play(req PlayRequest, resp *CommandResponse) error {
	s.log().Debug("play requested", logging.String("title", req.Title))
	status := s.daemon.Play(playback.Track{Title: req.Title, SourceURL: req.SourceURL})
	resp.OK = true
	resp.Message = "accepted"
	s.log().Info("playback started",
		logging.String(logging.FieldEventType, "playback_play"),
		logging.String("title", status.Track.Title),
		logging.String("source_url", status.Track.SourceURL))
	return nil
}

func (s *service) Pause(_ PauseRequest, resp *CommandResponse) error {
	status := s.daemon.Pause()
	resp.OK = true
	resp.Message = "ok"
	s.log().Info("playback paused",
		logging.String(logging.FieldEventType, "playback_pause"),
		logging.String("state", string(status.State)))
	return nil
}

func (s *service) Resume(_ ResumeRequest, resp *CommandResponse) error {
	status := s.daemon.Resume()
	resp.OK = true
	resp.Message = "ok"
	s.log().Info("playback resumed",
		logging.String(logging.FieldEventType, "playback_resume"),
		logging.String("state", string(status.State)))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *CommandResponse) error {
	s.daemon.StopPlayback()
	resp.OK = true
	resp.Message = "ok"
	s.log().Info("playback stopped",
		logging.String(logging.FieldEventType, "playback_stop"))
	return nil
}

func (s *service) Skip(_ SkipRequest, resp *CommandResponse) error {
	// No queue exists, so skipping degenerates to a stop.
	s.daemon.StopPlayback()
	resp.OK = true
	resp.Message = "ok"
	s.log().Info("playback skipped",
		logging.String(logging.FieldEventType, "playback_skip"))
	return nil
}

func (s *service) SetVolume(req SetVolumeRequest, resp *CommandResponse) error {
	status := s.daemon.SetVolume(req.VolumePercent)
	resp.OK = true
	resp.Message = "ok"
	s.log().Info("volume set",
		logging.String(logging.FieldEventType, "playback_volume"),
		logging.Int("requested_percent", req.VolumePercent),
		logging.Int("volume_percent", status.VolumePercent))
	return nil
}

func (s *service) GetStatus(_ GetStatusRequest, resp *GetStatusResponse) error {
	status := s.daemon.PlaybackStatus()
	resp.State = string(status.State)
	resp.NowPlayingTitle = status.Track.Title
	resp.NowPlayingSourceURL = status.Track.SourceURL
	resp.VolumePercent = status.VolumePercent
	return nil
}

func (s *service) SubscribeEvents(_ SubscribeEventsRequest, _ *SubscribeEventsResponse) error {
	s.log().Debug("event subscription rejected")
	return ErrEventStreamUnimplemented
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	s.log().Info("shutdown requested via RPC",
		logging.String(logging.FieldEventType, "daemon_shutdown"))
	s.daemon.RequestShutdown()
	resp.Stopping = true
	return nil
}

func (s *service) DaemonStatus(_ DaemonStatusRequest, resp *DaemonStatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.PID = status.PID
	resp.Version = Version
	resp.ListenAddr = status.ListenAddr
	resp.LockPath = status.LockPath
	resp.LogDir = status.LogDir
	resp.StartedAt = status.StartedAt
	resp.Monitoring = status.Monitoring
	resp.Backend = BackendStatus{
		State:          string(status.Backend.State),
		ConnectStatus:  status.Backend.ConnectStatus.String(),
		SessionHandle:  uint64(status.Backend.Handle),
		IdentitySource: string(status.Backend.IdentitySource),
	}
	return nil
}
