// Package config loads duke settings.
//
// Later layers override earlier ones: built-in defaults, the user file
// (~/.duke/duke.toml, else duke/duke.toml under the OS config directory),
// the project file (./duke.toml, else ./.duke/duke.toml), DUKE_*
// environment variables and finally command-line flags.
//
// Unknown keys in a TOML file are rejected. Relative paths are resolved
// against the directory duke was started in.
package config
