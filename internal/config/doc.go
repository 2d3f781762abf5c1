// Package config loads, normalizes, and validates Shelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHELF_DATA_DIR. The Config type centralizes every knob the daemon and CLI
// need, so the data directory, remote site settings, and logging options are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
