// Package dukedir provides constants and helpers for the .duke state directory.
package dukedir

import "path/filepath"

const (
	// Dir is the name of the per-project state directory.
	Dir = ".duke"

	// DefaultTaskFile is the JSON Lines task file (inside .duke).
	DefaultTaskFile = "tasks.jsonl"

	// DefaultDBFile is the SQLite database file (inside .duke).
	DefaultDBFile = "tasks.db"

	// DefaultSchemaFile is where duke init writes the record schema (inside .duke).
	DefaultSchemaFile = "task.schema.json"

	// DefaultConfigFile is the config file name, both inside .duke and at the project root.
	DefaultConfigFile = "duke.toml"
)

// DirPath returns the .duke directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "" || workDir == "." {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// TaskPath returns the task file path within a work directory.
func TaskPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultTaskFile)
}

// DBPath returns the database path within a work directory.
func DBPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultDBFile)
}

// SchemaPath returns the schema file path within a work directory.
func SchemaPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultSchemaFile)
}

// ConfigPath returns the config file path inside the .duke directory.
func ConfigPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultConfigFile)
}
