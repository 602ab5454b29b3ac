// Package daemonrun bootstraps the tsvoiced process: logging, pid and
// lock files, the voice session daemon, and the RPC serve loop.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"tsvoice/internal/config"
	"tsvoice/internal/daemon"
	"tsvoice/internal/ipc"
	"tsvoice/internal/logging"
	"tsvoice/internal/preflight"
	"tsvoice/internal/ts3"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// Listen overrides the configured RPC listen address when non-empty.
	Listen      string
	LogLevel    string
	Development bool
	// Client substitutes the voice backend; nil keeps the daemon default.
	Client ts3.Client
}

// Run starts the tsvoiced runtime loop and blocks until a signal arrives
// or a client requests shutdown. A failure to bind the RPC listener is
// returned to the caller; a voice backend that cannot connect is not.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to prepare directories: %v\n", err)
	}

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("tsvoiced-%s.log", runID))

	level := opts.LogLevel
	if strings.TrimSpace(level) == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logPrerequisiteSnapshot(signalCtx, logger, cfg)
	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update tsvoiced.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: "tsvoiced-*.log",
			Exclude: []string{logPath, cfg.Server.IdentityFile},
		},
		logging.RetentionTarget{
			Dir:     filepath.Join(cfg.Paths.LogDir, "ts3client"),
			Pattern: "*.log",
			Exclude: []string{cfg.Server.IdentityFile},
		},
	)

	pidPath := filepath.Join(cfg.Paths.LogDir, "tsvoiced.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	var daemonOpts []daemon.Option
	if opts.Client != nil {
		daemonOpts = append(daemonOpts, daemon.WithClient(opts.Client))
	}
	d, err := daemon.New(cfg, logger, daemonOpts...)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Stop()

	listenAddr := strings.TrimSpace(opts.Listen)
	if listenAddr == "" {
		listenAddr = cfg.Service.Listen
	}
	rpcServer, err := ipc.NewServer(signalCtx, listenAddr, d, logger)
	if err != nil {
		return fmt.Errorf("start RPC server: %w", err)
	}
	defer rpcServer.Close()
	rpcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logging.WarnWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the configuration and another running tsvoiced instance"),
			logging.String(logging.FieldImpact, "control requests are served without a voice session"),
		)
	}

	select {
	case <-signalCtx.Done():
		logger.Info("tsvoiced shutting down on signal")
	case <-d.ShutdownRequested():
		logger.Info("tsvoiced shutting down on client request")
	}
	return nil
}

// ensureCurrentLogPointer keeps <log_dir>/tsvoiced.log pointing at the
// current run's log file.
func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "tsvoiced.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

// logPrerequisiteSnapshot records what the voice backend will find on
// this host. Nothing here is enforced; the daemon starts degraded when
// resources are missing.
func logPrerequisiteSnapshot(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}

	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "prerequisite_snapshot"),
		logging.String("resource_dir", cfg.Paths.ResourceDir),
	}
	for _, status := range preflight.CheckResources(cfg) {
		key := strings.ReplaceAll(strings.ToLower(status.Name), " ", "_") + "_available"
		attrs = append(attrs, logging.Bool(key, status.Available))
	}
	for _, result := range preflight.RunAll(ctx, cfg) {
		key := strings.ReplaceAll(strings.ToLower(result.Name), " ", "_") + "_ok"
		attrs = append(attrs, logging.Bool(key, result.Passed))
	}
	if probe := preflight.ProbeSoundCards(""); probe.Detected {
		attrs = append(attrs, logging.Int("sound_cards", len(probe.Cards)))
	} else {
		attrs = append(attrs, logging.Int("sound_cards", 0))
	}

	logger.Info("prerequisite snapshot", logging.Args(attrs...)...)
}
