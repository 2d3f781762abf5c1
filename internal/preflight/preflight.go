package preflight

import (
	"context"

	"shelf/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// LocalChecks runs the checks that need no network access.
func LocalChecks(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckSelector(cfg.Scraper.Selector),
	}
}

// RunAll executes the local checks followed by a reachability probe of the
// remote site.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := LocalChecks(cfg)
	results = append(results, CheckSite(ctx, cfg.Scraper.Origin, cfg.Scraper.UserAgent))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
