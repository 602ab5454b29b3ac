package ipc_test

import (
	"context"
	"strings"
	"testing"

	"tsvoice/internal/daemon"
	"tsvoice/internal/ipc"
	"tsvoice/internal/logging"
	"tsvoice/internal/session"
	"tsvoice/internal/testsupport"
)

func TestRPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	logger := logging.NewNop()
	d, err := daemon.New(cfg, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(d.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	srv, err := ipc.NewServer(ctx, cfg.Service.Listen, d, logger)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	client, err := ipc.Dial(srv.Addr())
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	ping, err := client.Ping()
	if err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if ping.Version != ipc.Version {
		t.Fatalf("expected version %s, got %s", ipc.Version, ping.Version)
	}

	playResp, err := client.Play("First Song", "https://example.org/one")
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !playResp.OK || playResp.Message != "accepted" {
		t.Fatalf("unexpected play response: %#v", playResp)
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.State != "playing" || status.NowPlayingTitle != "First Song" {
		t.Fatalf("unexpected status after play: %#v", status)
	}
	if status.NowPlayingSourceURL != "https://example.org/one" {
		t.Fatalf("unexpected source url: %s", status.NowPlayingSourceURL)
	}

	pauseResp, err := client.Pause()
	if err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if !pauseResp.OK || pauseResp.Message != "ok" {
		t.Fatalf("unexpected pause response: %#v", pauseResp)
	}
	if status, err = client.GetStatus(); err != nil || status.State != "paused" {
		t.Fatalf("expected paused state, got %#v (err %v)", status, err)
	}

	if _, err = client.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if status, err = client.GetStatus(); err != nil || status.State != "playing" {
		t.Fatalf("expected playing state after resume, got %#v (err %v)", status, err)
	}

	volResp, err := client.SetVolume(500)
	if err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if !volResp.OK {
		t.Fatalf("unexpected volume response: %#v", volResp)
	}
	if status, err = client.GetStatus(); err != nil || status.VolumePercent != 200 {
		t.Fatalf("expected clamped volume 200, got %#v (err %v)", status, err)
	}

	skipResp, err := client.Skip()
	if err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if !skipResp.OK || skipResp.Message != "ok" {
		t.Fatalf("unexpected skip response: %#v", skipResp)
	}
	status, err = client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if status.State != "idle" || status.NowPlayingTitle != "" || status.NowPlayingSourceURL != "" {
		t.Fatalf("expected cleared playback after skip, got %#v", status)
	}
	if status.VolumePercent != 200 {
		t.Fatalf("expected volume to survive skip, got %d", status.VolumePercent)
	}

	if _, err = client.SubscribeEvents("all"); err == nil {
		t.Fatal("expected SubscribeEvents to fail")
	} else if !strings.Contains(err.Error(), "event stream not implemented") {
		t.Fatalf("unexpected subscription error: %v", err)
	}

	daemonStatus, err := client.DaemonStatus()
	if err != nil {
		t.Fatalf("DaemonStatus failed: %v", err)
	}
	if !daemonStatus.Running || daemonStatus.PID <= 0 {
		t.Fatalf("unexpected daemon status: %#v", daemonStatus)
	}
	if daemonStatus.Version != ipc.Version {
		t.Fatalf("unexpected version: %s", daemonStatus.Version)
	}
	if daemonStatus.Backend.State != string(session.BackendUnavailable) {
		t.Fatalf("expected unavailable backend, got %s", daemonStatus.Backend.State)
	}
	if daemonStatus.StartedAt.IsZero() {
		t.Fatal("expected started timestamp")
	}

	shutdownResp, err := client.Shutdown()
	if err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !shutdownResp.Stopping {
		t.Fatalf("unexpected shutdown response: %#v", shutdownResp)
	}
	select {
	case <-d.ShutdownRequested():
	default:
		t.Fatal("expected shutdown request to reach the daemon")
	}
}

func TestDialUnreachable(t *testing.T) {
	if _, err := ipc.Dial("127.0.0.1:1"); err == nil {
		t.Fatal("expected dial to fail with no listener")
	}
}

func TestServerRequiresDaemon(t *testing.T) {
	if _, err := ipc.NewServer(context.Background(), "127.0.0.1:0", nil, nil); err == nil {
		t.Fatal("expected error for nil daemon")
	}
}
