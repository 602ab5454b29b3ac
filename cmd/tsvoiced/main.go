// Command tsvoiced runs the voice-session daemon. It accepts a single
// optional listen-address argument overriding the configured RPC
// address and exits non-zero when the listener cannot be bound.
package main

import (
	"context"
	"fmt"
	"os"

	"tsvoice/internal/config"
	"tsvoice/internal/daemonrun"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	listen, err := listenArg(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: tsvoiced [listen-address]")
		return 1
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	opts := daemonrun.Options{
		Listen:   listen,
		LogLevel: cfg.Logging.Level,
	}
	if err := daemonrun.Run(context.Background(), cfg, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func listenArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("too many arguments: %d", len(args))
	}
}
