package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tsvoice/internal/config"
)

func TestLoadDefaultsAppliesEnvAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TSVOICE_HOST", "ts.example.net")
	t.Setenv("TSVOICE_CHANNEL_PATH", "Lobby/Music")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Server.Host != "ts.example.net" {
		t.Fatalf("expected host from env, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9987 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Server.Nickname != "tsvoice" {
		t.Fatalf("unexpected default nickname: %q", cfg.Server.Nickname)
	}
	if cfg.Service.Listen != "127.0.0.1:50051" {
		t.Fatalf("unexpected default listen address: %q", cfg.Service.Listen)
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "tsvoice", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Server.IdentityFile != filepath.Join(wantLogDir, "identity.txt") {
		t.Fatalf("unexpected identity file default: %q", cfg.Server.IdentityFile)
	}

	segments := cfg.ChannelPathSegments()
	if len(segments) != 2 || segments[0] != "Lobby" || segments[1] != "Music" {
		t.Fatalf("unexpected channel path segments: %v", segments)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be a directory", cfg.Paths.LogDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "tsvoice.toml")

	type payload struct {
		Service struct {
			Listen string `toml:"listen"`
		} `toml:"service"`
		Server struct {
			Host      string `toml:"host"`
			Port      int    `toml:"port"`
			Nickname  string `toml:"nickname"`
			ChannelID uint64 `toml:"channel_id"`
		} `toml:"server"`
		Paths struct {
			LogDir string `toml:"log_dir"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Service.Listen = "0.0.0.0:6000"
	custom.Server.Host = "voice.internal"
	custom.Server.Port = 10011
	custom.Server.Nickname = "jukebox"
	custom.Server.ChannelID = 42
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")

	encoded, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Service.Listen != "0.0.0.0:6000" {
		t.Fatalf("unexpected listen: %q", cfg.Service.Listen)
	}
	if cfg.Server.Host != "voice.internal" || cfg.Server.Port != 10011 {
		t.Fatalf("unexpected server settings: %q:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.ChannelID != 42 {
		t.Fatalf("unexpected channel id: %d", cfg.Server.ChannelID)
	}
	if cfg.Server.IdentityFile != filepath.Join(custom.Paths.LogDir, "identity.txt") {
		t.Fatalf("identity file should default under configured log dir, got %q", cfg.Server.IdentityFile)
	}
}

func TestLoadRejectsChannelConflict(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "conflict.toml")
	body := strings.Join([]string{
		"[server]",
		`channel_path = "Lobby/Music"`,
		"channel_id = 7",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected mutual-exclusion error")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsInvalidListen(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "listen.toml")
	if err := os.WriteFile(configPath, []byte("[service]\nlisten = \"not-an-address\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected listen validation error")
	}
}

func TestLoadRejectsInvalidPortEnv(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TSVOICE_PORT", "not-a-number")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected port parse error")
	}
}

func TestChannelPathSegmentsHandlesBothSlashStyles(t *testing.T) {
	cfg := config.Default()
	cfg.Server.ChannelPath = `Parent\Child/Grandchild`

	segments := cfg.ChannelPathSegments()
	want := []string{"Parent", "Child", "Grandchild"}
	if len(segments) != len(want) {
		t.Fatalf("unexpected segment count: %v", segments)
	}
	for i, segment := range want {
		if segments[i] != segment {
			t.Fatalf("segment %d: got %q want %q", i, segments[i], segment)
		}
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	samplePath := filepath.Join(tempHome, "config.toml")

	if err := config.CreateSample(samplePath); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(samplePath)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Server.Port != 9987 {
		t.Fatalf("sample should keep defaults, got port %d", cfg.Server.Port)
	}
}
