package testsupport

import (
	"path/filepath"
	"testing"

	"shelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The HTTP API is bound to an ephemeral port.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRemoteSite points the scraper at a test server origin. Accepted links
// are <origin>/animes/.
func WithRemoteSite(origin string) ConfigOption {
	return func(c *config.Config) {
		c.Scraper.Origin = origin
		c.Scraper.AcceptedPrefix = origin + "/animes/"
	}
}

// WithSingleFlight toggles per-link fetch deduplication.
func WithSingleFlight(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Images.SingleFlight = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
