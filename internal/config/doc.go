// Package config holds all runtime configuration for the scanner.
//
// Configuration is assembled in three layers: documented defaults, an
// optional YAML config file (found in the current directory or the XDG
// config directory), and CLI flags, with later layers overriding earlier
// ones. The resulting Config struct is passed through the application by
// dependency injection; there is no package-level mutable state.
package config
