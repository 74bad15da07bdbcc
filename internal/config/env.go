package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from DUKE_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	strs := []struct {
		env    string
		field  string
		target *string
	}{
		{"DUKE_TASK_FILE", "task_file", &cfg.TaskFile},
		{"DUKE_BACKEND", "backend", &cfg.Backend},
		{"DUKE_DB_FILE", "db_file", &cfg.DBFile},
		{"DUKE_SCHEMA", "schema_file", &cfg.SchemaFile},
		{"DUKE_LOG_DIR", "log_dir", &cfg.LogDir},
		{"DUKE_LOG_LEVEL", "log_level", &cfg.LogLevel},
		{"DUKE_LOG_FORMAT", "log_format", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.target = v
			sources[s.field] = SourceEnv
		}
	}

	bools := []struct {
		env    string
		field  string
		target *bool
	}{
		{"DUKE_STRICT", "strict", &cfg.Strict},
		{"DUKE_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps},
		{"DUKE_LOG_CALLER", "log_caller", &cfg.LogCaller},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		*b.target = parsed
		sources[b.field] = SourceEnv
	}
	return nil
}

// boolFromString accepts the usual spellings of true and false.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
