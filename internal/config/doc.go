// Package config loads, normalizes, and validates mcl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates matching thresholds. The Config
// type centralizes every knob the CLI needs: the catalog data directory, the
// LMS database location and record-type mapping, and the matcher policy.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
