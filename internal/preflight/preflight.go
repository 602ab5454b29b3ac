package preflight

import (
	"context"
	"strings"

	"tsvoice/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding setting is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Log directory (always checked)
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	// Resource directory (when configured)
	if cfg.Paths.ResourceDir != "" {
		results = append(results, CheckDirectoryAccess("Resource directory", cfg.Paths.ResourceDir))
	}

	results = append(results, CheckListenAddr(cfg.Service.Listen))

	if strings.TrimSpace(cfg.Server.Host) != "" {
		results = append(results, CheckServer(ctx, cfg.Server.Host, cfg.Server.Port))
	}

	return results
}
