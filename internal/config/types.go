package config

import (
	"github.com/nibzard/duke-go/internal/dukedir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultBackend   = "file"
	DefaultLogDir    = "~/.duke/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

var (
	DefaultTaskFile = dukedir.TaskPath(".")
	DefaultDBFile   = dukedir.DBPath(".")
)

// Config holds the full configuration for duke.
type Config struct {
	// Storage
	TaskFile   string `toml:"task_file"`
	Backend    string `toml:"backend"`
	DBFile     string `toml:"db_file"`
	SchemaFile string `toml:"schema_file"`
	Strict     bool   `toml:"strict"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// StorePath returns the path the configured backend reads and writes.
func (c *Config) StorePath() string {
	if c.Backend == "sqlite" {
		return c.DBFile
	}
	return c.TaskFile
}

// configFields returns the configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"backend",
		"db_file",
		"schema_file",
		"strict",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.Backend = DefaultBackend
	cfg.DBFile = DefaultDBFile
	cfg.SchemaFile = ""
	cfg.Strict = false
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}
