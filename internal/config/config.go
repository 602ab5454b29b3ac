package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Service contains the RPC listener configuration.
type Service struct {
	Listen string `toml:"listen"`
}

// Server contains the voice server connection settings.
type Server struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Nickname        string `toml:"nickname"`
	Identity        string `toml:"identity"`
	IdentityFile    string `toml:"identity_file"`
	ServerPassword  string `toml:"server_password"`
	ChannelPassword string `toml:"channel_password"`
	ChannelPath     string `toml:"channel_path"`
	ChannelID       uint64 `toml:"channel_id"`
}

// Paths contains directory configuration.
type Paths struct {
	ResourceDir string `toml:"resource_dir"`
	LogDir      string `toml:"log_dir"`
}

// Devices contains optional explicit audio device overrides. When set, the
// override is tried before the backend's default-device fallback chain.
type Devices struct {
	PlaybackMode string `toml:"playback_mode"`
	PlaybackID   string `toml:"playback_id"`
	CaptureMode  string `toml:"capture_mode"`
	CaptureID    string `toml:"capture_id"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for tsvoice.
//
// Configuration sections by subsystem:
//   - Service: RPC listen address
//   - Server: voice server host/port, nickname, identity, passwords, target channel
//   - Paths: client library resources and log directory
//   - Devices: optional explicit playback/capture device overrides
//   - Logging: log format, level, and retention
type Config struct {
	Service Service `toml:"service"`
	Server  Server  `toml:"server"`
	Paths   Paths   `toml:"paths"`
	Devices Devices `toml:"devices"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tsvoice/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and environment fallbacks applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tsvoice.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon writes to: the log
// directory and the identity file's parent. Session startup treats a failure
// here as best-effort and continues.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if parent := filepath.Dir(strings.TrimSpace(c.Server.IdentityFile)); parent != "" && parent != "." {
		dirs = append(dirs, parent)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ChannelPathSegments returns the configured channel path split into ordered
// name segments. Both slash styles separate segments; empty segments are
// dropped.
func (c *Config) ChannelPathSegments() []string {
	raw := strings.TrimSpace(c.Server.ChannelPath)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
