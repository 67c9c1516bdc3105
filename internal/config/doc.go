// Package config loads, normalizes, and validates collate configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// COLLATE_DATA_DIR. The Config type centralizes every knob the pipeline and
// CLI need: where the stage folders live, which static tables to load, and
// how forgiving the aligner and verifier should be.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
