package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScraper(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScraper() error {
	origin, err := url.Parse(c.Scraper.Origin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("scraper.origin must be an absolute URL, got %q", c.Scraper.Origin)
	}
	if !strings.HasPrefix(c.Scraper.AcceptedPrefix, "http://") && !strings.HasPrefix(c.Scraper.AcceptedPrefix, "https://") {
		return fmt.Errorf("scraper.accepted_prefix must start with http:// or https://, got %q", c.Scraper.AcceptedPrefix)
	}
	if c.Scraper.RequestTimeoutSeconds < 0 {
		return errors.New("scraper.request_timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if !c.Catalog.EnforceScoreRange {
		return nil
	}
	if c.Catalog.MinScore > c.Catalog.MaxScore {
		return fmt.Errorf("catalog.min_score (%g) must not exceed catalog.max_score (%g)", c.Catalog.MinScore, c.Catalog.MaxScore)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
