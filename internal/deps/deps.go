// Package deps reports on the runtime files the voice backend loads
// from disk. The daemon starts without them, so availability is
// surfaced through status output rather than enforced.
package deps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind says whether a requirement is a file or a directory.
type Kind int

const (
	File Kind = iota
	Dir
)

// Requirement defines one file or directory the voice backend needs at
// runtime.
type Requirement struct {
	Name        string
	Path        string
	Kind        Kind
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ResourceRequirements lists what the client library expects under the
// configured resource directory.
func ResourceRequirements(resourceDir string) []Requirement {
	return []Requirement{
		{
			Name:        "client library",
			Path:        filepath.Join(resourceDir, "libts3client.so"),
			Kind:        File,
			Description: "native voice client library",
		},
		{
			Name:        "sound backends",
			Path:        filepath.Join(resourceDir, "soundbackends"),
			Kind:        Dir,
			Description: "audio backend plugins",
			Optional:    true,
		},
	}
}

// Check evaluates the provided requirements against the filesystem.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		path := strings.TrimSpace(req.Path)
		status := Status{
			Name:        req.Name,
			Path:        path,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if path == "" {
			status.Detail = "path not configured"
			results = append(results, status)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			status.Detail = fmt.Sprintf("%q not found", path)
			results = append(results, status)
			continue
		}
		if req.Kind == Dir && !info.IsDir() {
			status.Detail = fmt.Sprintf("%q is not a directory", path)
			results = append(results, status)
			continue
		}
		if req.Kind == File && info.IsDir() {
			status.Detail = fmt.Sprintf("%q is a directory", path)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
