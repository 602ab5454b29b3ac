package preflight

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tsvoice/internal/config"
	"tsvoice/internal/deps"
)

// CheckServer verifies that the voice server host resolves. Voice traffic
// runs over UDP, so reachability is not probed; a host that fails DNS is the
// common misconfiguration this catches. IP literals pass without a lookup.
func CheckServer(ctx context.Context, host string, port int) Result {
	const name = "Voice server"

	host = strings.TrimSpace(host)
	if host == "" {
		return Result{Name: name, Detail: "missing host"}
	}
	if port <= 0 || port > 65535 {
		return Result{Name: name, Detail: fmt.Sprintf("invalid port %d", port)}
	}
	if net.ParseIP(host) != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s:%d", host, port)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupHost(checkCtx, host)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", host, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s resolves to %s", host, addrs[0])}
}

// CheckListenAddr validates the RPC listen address without binding it.
func CheckListenAddr(addr string) Result {
	const name = "RPC listen address"

	addr = strings.TrimSpace(addr)
	if addr == "" {
		return Result{Name: name, Detail: "missing listen address"}
	}
	host, portText, err := net.SplitHostPort(addr)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", addr, err)}
	}
	port, err := strconv.Atoi(portText)
	if err != nil || port < 0 || port > 65535 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: invalid port %q)", addr, portText)}
	}
	if host != "" && net.ParseIP(host) == nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (hostname listen address)", addr)}
	}
	return Result{Name: name, Passed: true, Detail: addr}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckResources evaluates the native client library resources for the given
// config. Both the daemon and the CLI status command use this to avoid
// duplicating the requirements list.
func CheckResources(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	return deps.Check(deps.ResourceRequirements(cfg.Paths.ResourceDir))
}
