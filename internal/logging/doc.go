// Package logging assembles structured slog loggers and formatting helpers used
// across Shelf.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command handlers can tag log
// lines with entry IDs and correlation IDs automatically. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
