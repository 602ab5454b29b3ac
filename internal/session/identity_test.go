package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsvoice/internal/logging"
)

func TestResolveIdentityPrefersConfig(t *testing.T) {
	fake := newFakeClient()
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Server.IdentityFile, []byte("file-identity\n"), 0o600); err != nil {
		t.Fatalf("seed identity file: %v", err)
	}

	identity, source, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err != nil {
		t.Fatalf("resolveIdentity: %v", err)
	}
	if identity != "configured-identity" || source != IdentityFromConfig {
		t.Fatalf("identity = %q source = %q", identity, source)
	}
	if got := fake.callCount("CreateIdentity"); got != 0 {
		t.Fatalf("CreateIdentity calls = %d, want 0", got)
	}
}

func TestResolveIdentityReadsFirstLine(t *testing.T) {
	fake := newFakeClient()
	cfg := testConfig(t)
	cfg.Server.Identity = ""
	if err := os.WriteFile(cfg.Server.IdentityFile, []byte("first-line\nsecond-line\n"), 0o600); err != nil {
		t.Fatalf("seed identity file: %v", err)
	}

	identity, source, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err != nil {
		t.Fatalf("resolveIdentity: %v", err)
	}
	if identity != "first-line" || source != IdentityFromFile {
		t.Fatalf("identity = %q source = %q", identity, source)
	}
}

func TestResolveIdentityGeneratesAndPersists(t *testing.T) {
	fake := newFakeClient()
	cfg := testConfig(t)
	cfg.Server.Identity = ""

	identity, source, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err != nil {
		t.Fatalf("resolveIdentity: %v", err)
	}
	if identity != fake.identity || source != IdentityGenerated {
		t.Fatalf("identity = %q source = %q", identity, source)
	}

	persisted, err := os.ReadFile(cfg.Server.IdentityFile)
	if err != nil {
		t.Fatalf("read identity file: %v", err)
	}
	if string(persisted) != fake.identity {
		t.Fatalf("persisted identity = %q", persisted)
	}
}

func TestResolveIdentityEmptyFileRegenerates(t *testing.T) {
	fake := newFakeClient()
	cfg := testConfig(t)
	cfg.Server.Identity = ""
	if err := os.WriteFile(cfg.Server.IdentityFile, nil, 0o600); err != nil {
		t.Fatalf("seed identity file: %v", err)
	}

	identity, source, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err != nil {
		t.Fatalf("resolveIdentity: %v", err)
	}
	if identity != fake.identity || source != IdentityGenerated {
		t.Fatalf("identity = %q source = %q", identity, source)
	}
}

func TestResolveIdentityPersistFailureTolerated(t *testing.T) {
	fake := newFakeClient()
	cfg := testConfig(t)
	cfg.Server.Identity = ""
	// A directory at the identity path defeats both read and write.
	cfg.Server.IdentityFile = filepath.Join(t.TempDir(), "identity-dir")
	if err := os.MkdirAll(cfg.Server.IdentityFile, 0o755); err != nil {
		t.Fatalf("create directory: %v", err)
	}

	identity, source, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err != nil {
		t.Fatalf("persist failure should not be fatal: %v", err)
	}
	if identity != fake.identity || source != IdentityGenerated {
		t.Fatalf("identity = %q source = %q", identity, source)
	}
}

func TestResolveIdentityGenerateFailureFatal(t *testing.T) {
	fake := newFakeClient()
	fake.identityErr = os.ErrPermission
	cfg := testConfig(t)
	cfg.Server.Identity = ""
	cfg.Server.IdentityFile = ""

	_, _, err := resolveIdentity(cfg, fake, logging.NewNop())
	if err == nil {
		t.Fatal("expected error when identity generation fails")
	}
	if !strings.Contains(err.Error(), "create identity") {
		t.Fatalf("error = %v", err)
	}
}
