package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# duke configuration file
# Values can be overridden by DUKE_* environment variables or CLI flags.

# Storage backend: "file" (JSON Lines) or "sqlite"
backend = "file"

# Task file for the file backend (relative to project root)
task_file = ".duke/tasks.jsonl"

# Database for the sqlite backend (relative to project root)
db_file = ".duke/tasks.db"

# JSON Schema for task records; the bundled schema is used when empty
# schema_file = ".duke/task.schema.json"

# Fail on invalid records instead of skipping them with a warning
strict = false

# Session logs (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.duke/logs"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}
