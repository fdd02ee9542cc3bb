// Package config loads, normalizes, and validates salience configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SALIENCE_API_TOKEN, optionally sourced from a .env file in the working
// directory. The Config type centralizes every knob the CLI and server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
