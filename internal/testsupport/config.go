package testsupport

import (
	"path/filepath"
	"testing"

	"tsvoice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Service.Listen = "127.0.0.1:0"
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ResourceDir = filepath.Join(base, "sdk")
	cfgVal.Server.IdentityFile = filepath.Join(base, "logs", "identity.txt")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithListen overrides the RPC listen address on the test config.
func WithListen(addr string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.Listen = addr
	}
}

// WithChannelID points the test config at a fixed target channel.
func WithChannelID(id uint64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.ChannelID = id
	}
}

// WithIdentity seeds a configured identity so neither the identity file nor
// generation is consulted.
func WithIdentity(identity string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.Identity = identity
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
