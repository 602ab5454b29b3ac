package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"tsvoice/internal/config"
	"tsvoice/internal/ipc"
)

type commandContext struct {
	configFlag *string
	listenFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, listenFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		listenFlag: listenFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// listenAddr resolves the daemon RPC address: the --listen flag wins,
// then the configured service.listen, then the compiled-in default.
func (c *commandContext) listenAddr() string {
	if c.listenFlag != nil {
		if addr := strings.TrimSpace(*c.listenFlag); addr != "" {
			return addr
		}
	}
	if cfg := c.configValue(); cfg != nil {
		return cfg.Service.Listen
	}
	return config.Default().Service.Listen
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	client, err := c.dialClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) dialClient() (*ipc.Client, error) {
	addr := c.listenAddr()
	client, err := ipc.Dial(addr)
	if err != nil {
		return nil, wrapDialError(err, addr)
	}
	return client, nil
}

func wrapDialError(err error, addr string) error {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("connect to daemon: %s refused the connection; start the daemon with `tsvoice start`", addr)
	}
	return fmt.Errorf("connect to daemon at %s: %w", addr, err)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
