package session

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"tsvoice/internal/config"
	"tsvoice/internal/logging"
	"tsvoice/internal/ts3"
)

// IdentitySource records where the session identity came from.
type IdentitySource string

const (
	IdentityFromConfig IdentitySource = "config"
	IdentityFromFile   IdentitySource = "file"
	IdentityGenerated  IdentitySource = "generated"
)

// resolveIdentity returns the client identity, preferring the configured
// value, then the first line of the identity file, then a freshly
// generated identity. Generated identities are persisted back to the
// identity file so the client keeps its server-side reputation across
// restarts; a failed write is logged and tolerated.
func resolveIdentity(cfg *config.Config, client ts3.Client, logger *slog.Logger) (string, IdentitySource, error) {
	if cfg.Server.Identity != "" {
		return cfg.Server.Identity, IdentityFromConfig, nil
	}

	path := cfg.Server.IdentityFile
	if path != "" {
		if identity, ok := readIdentityFile(path); ok {
			return identity, IdentityFromFile, nil
		}
	}

	identity, err := client.CreateIdentity()
	if err != nil {
		return "", "", fmt.Errorf("create identity: %w", err)
	}
	logger.Info("generated new client identity", logging.String("path", path))

	if path != "" {
		if err := os.WriteFile(path, []byte(identity), 0o600); err != nil {
			logging.WarnWithContext(logger, "identity not persisted", "identity_persist_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "a new identity will be generated on the next start"))
		}
	}
	return identity, IdentityGenerated, nil
}

// readIdentityFile returns the first line of the file when it is
// readable and non-empty.
func readIdentityFile(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return "", false
	}
	line := scanner.Text()
	if line == "" {
		return "", false
	}
	return line, true
}
