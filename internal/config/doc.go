// Package config loads, normalizes, and validates unlockforge configuration.
//
// Settings come from a TOML or YAML file (picked by extension), fall back to
// repository defaults, and honour environment overrides for the catalog
// source, output path, and log level. The unlocked range tokens are parsed
// during validation so a malformed token stops the run before anything is
// fetched.
package config
