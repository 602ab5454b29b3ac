package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeService(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeDevices()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeService() error {
	c.Service.Listen = strings.TrimSpace(c.Service.Listen)
	if c.Service.Listen == "" {
		if value, ok := os.LookupEnv("TSVOICE_LISTEN"); ok {
			c.Service.Listen = strings.TrimSpace(value)
		}
	}
	if c.Service.Listen == "" {
		c.Service.Listen = defaultListen
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ResourceDir) == "" {
		if value, ok := os.LookupEnv("TSVOICE_RESOURCE_DIR"); ok {
			c.Paths.ResourceDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.ResourceDir) == "" {
		c.Paths.ResourceDir = defaultResourceDir
	}
	if c.Paths.ResourceDir, err = expandPath(c.Paths.ResourceDir); err != nil {
		return fmt.Errorf("paths.resource_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		if value, ok := os.LookupEnv("TSVOICE_LOG_DIR"); ok {
			c.Paths.LogDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	if c.Server.Host == "" {
		if value, ok := os.LookupEnv("TSVOICE_HOST"); ok {
			c.Server.Host = strings.TrimSpace(value)
		}
	}
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}

	if c.Server.Port == 0 {
		if value, ok := os.LookupEnv("TSVOICE_PORT"); ok {
			port, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("TSVOICE_PORT: %w", err)
			}
			c.Server.Port = port
		}
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}

	c.Server.Nickname = strings.TrimSpace(c.Server.Nickname)
	if c.Server.Nickname == "" {
		if value, ok := os.LookupEnv("TSVOICE_NICKNAME"); ok {
			c.Server.Nickname = strings.TrimSpace(value)
		}
	}
	if c.Server.Nickname == "" {
		c.Server.Nickname = defaultNickname
	}

	if c.Server.Identity == "" {
		if value, ok := os.LookupEnv("TSVOICE_IDENTITY"); ok {
			c.Server.Identity = strings.TrimSpace(value)
		}
	}
	if c.Server.ServerPassword == "" {
		if value, ok := os.LookupEnv("TSVOICE_SERVER_PASSWORD"); ok {
			c.Server.ServerPassword = value
		}
	}
	if c.Server.ChannelPassword == "" {
		if value, ok := os.LookupEnv("TSVOICE_CHANNEL_PASSWORD"); ok {
			c.Server.ChannelPassword = value
		}
	}
	if strings.TrimSpace(c.Server.ChannelPath) == "" {
		if value, ok := os.LookupEnv("TSVOICE_CHANNEL_PATH"); ok {
			c.Server.ChannelPath = strings.TrimSpace(value)
		}
	}
	if c.Server.ChannelID == 0 {
		if value, ok := os.LookupEnv("TSVOICE_CHANNEL_ID"); ok {
			id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return fmt.Errorf("TSVOICE_CHANNEL_ID: %w", err)
			}
			c.Server.ChannelID = id
		}
	}

	var err error
	c.Server.IdentityFile = strings.TrimSpace(c.Server.IdentityFile)
	if c.Server.IdentityFile == "" {
		if value, ok := os.LookupEnv("TSVOICE_IDENTITY_FILE"); ok {
			c.Server.IdentityFile = strings.TrimSpace(value)
		}
	}
	if c.Server.IdentityFile == "" {
		c.Server.IdentityFile = filepath.Join(c.Paths.LogDir, defaultIdentityFileName)
	}
	if c.Server.IdentityFile, err = expandPath(c.Server.IdentityFile); err != nil {
		return fmt.Errorf("server.identity_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDevices() {
	c.Devices.PlaybackMode = strings.TrimSpace(c.Devices.PlaybackMode)
	c.Devices.PlaybackID = strings.TrimSpace(c.Devices.PlaybackID)
	c.Devices.CaptureMode = strings.TrimSpace(c.Devices.CaptureMode)
	c.Devices.CaptureID = strings.TrimSpace(c.Devices.CaptureID)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
