package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScraper()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SHELF_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// An empty api_bind is kept: it disables the HTTP API.
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	return nil
}

func (c *Config) normalizeScraper() {
	c.Scraper.Origin = strings.TrimRight(strings.TrimSpace(c.Scraper.Origin), "/")
	if c.Scraper.Origin == "" {
		c.Scraper.Origin = DefaultOrigin
	}
	c.Scraper.AcceptedPrefix = strings.TrimSpace(c.Scraper.AcceptedPrefix)
	if c.Scraper.AcceptedPrefix == "" {
		c.Scraper.AcceptedPrefix = DefaultAcceptedPrefix
	}
	c.Scraper.Selector = strings.TrimSpace(c.Scraper.Selector)
	if c.Scraper.Selector == "" {
		c.Scraper.Selector = DefaultPosterSelector
	}
	c.Scraper.UserAgent = strings.TrimSpace(c.Scraper.UserAgent)
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("SHELF_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
