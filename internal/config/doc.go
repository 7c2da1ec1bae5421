// Package config loads, normalizes, and validates srtchunk configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SRTCHUNK_LOG_LEVEL environment
// override. The Config type centralizes every knob the CLI needs, allowing
// workspace directories, chunk sizing and validation limits to be discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
