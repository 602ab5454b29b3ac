package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateService() error {
	host, port, err := net.SplitHostPort(c.Service.Listen)
	if err != nil {
		return fmt.Errorf("service.listen %q: %w", c.Service.Listen, err)
	}
	if strings.TrimSpace(host) == "" {
		return errors.New("service.listen must include a host")
	}
	if strings.TrimSpace(port) == "" {
		return errors.New("service.listen must include a port")
	}
	return nil
}

func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Host) == "" {
		return errors.New("server.host must be set")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Nickname) == "" {
		return errors.New("server.nickname must be set")
	}
	if c.Server.ChannelID != 0 && len(c.ChannelPathSegments()) > 0 {
		return errors.New("server.channel_id and server.channel_path are mutually exclusive; set one")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ResourceDir) == "" {
		return errors.New("paths.resource_dir must be set")
	}
	return nil
}
