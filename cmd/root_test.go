// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/duke-go/internal/config"
	"github.com/nibzard/duke-go/internal/dukedir"
	"github.com/nibzard/duke-go/internal/storage"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

// isolate runs the test in an empty project with no user config and no
// DUKE_* overrides. It returns the project directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "DUKE_") {
			t.Setenv(name, "")
		}
	}
	t.Setenv("DUKE_LOG_DIR", t.TempDir())
	chdir(t, t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), args)
	})
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	t.Run("shows help with --help flag", func(t *testing.T) {
		out, err := run(t, "--help")
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Usage:") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		if _, err := run(t, "-h"); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		out, err := run(t, "--version")
		if err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
		if !strings.Contains(out, "duke version") {
			t.Errorf("expected version output, got %q", out)
		}
	})

	t.Run("shows version with -v flag", func(t *testing.T) {
		if _, err := run(t, "-v"); err != nil {
			t.Errorf("expected no error with -v, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		if _, err := run(t, "help"); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, err := run(t, "unknown-command")
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("bad backend flag returns error", func(t *testing.T) {
		_, err := run(t, "-backend", "postgres", "ls")
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})

	t.Run("doctor command executes", func(t *testing.T) {
		out, err := run(t, "doctor")
		if err != nil {
			t.Errorf("doctor on an empty project failed: %v", err)
		}
		if !strings.Contains(out, "All checks passed.") {
			t.Errorf("expected passing doctor report, got %q", out)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	out, err := captureStdout(t, versionCommand)
	if err != nil {
		t.Fatalf("versionCommand() error = %v", err)
	}
	if out != "duke version 1.2.3\n" {
		t.Errorf("versionCommand() output = %q", out)
	}
}

func TestExecAndLs(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			isolate(t)
			t.Setenv("DUKE_BACKEND", backend)

			out, err := run(t, "exec", "todo", "read", "book")
			if err != nil {
				t.Fatalf("exec todo error = %v", err)
			}
			want := "Got it. I've added this task:\n  [T][ ] read book\nNow you have 1 task in the list.\n"
			if out != want {
				t.Errorf("exec todo output = %q, want %q", out, want)
			}

			if _, err := run(t, "exec", "deadline", "submit", "report", "/by", "Friday"); err != nil {
				t.Fatalf("exec deadline error = %v", err)
			}
			if _, err := run(t, "exec", "done", "2"); err != nil {
				t.Fatalf("exec done error = %v", err)
			}

			out, err = run(t, "ls")
			if err != nil {
				t.Fatalf("ls error = %v", err)
			}
			want = "Here are the tasks in your list:\n1.[T][ ] read book\n2.[D][X] submit report (by: Friday)\n"
			if out != want {
				t.Errorf("ls output = %q, want %q", out, want)
			}
		})
	}
}

func TestExecFailures(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", []string{"exec"}},
		{"unknown keyword", []string{"exec", "blah"}},
		{"out of range", []string{"exec", "done", "3"}},
		{"empty description", []string{"exec", "todo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err == nil {
				t.Errorf("expected error, got output %q", out)
			}
			if out != "" {
				t.Errorf("expected no output on failure, got %q", out)
			}
		})
	}

	if _, err := os.Stat(dukedir.TaskPath(".")); !os.IsNotExist(err) {
		t.Errorf("failed commands should not create the task file, stat err = %v", err)
	}
}

func TestReplCommand(t *testing.T) {
	dir := isolate(t)

	oldStdin := stdin
	stdin = strings.NewReader("todo read book\n\nlist\nbye\ntodo never\n")
	defer func() { stdin = oldStdin }()

	out, err := run(t)
	if err != nil {
		t.Fatalf("repl error = %v", err)
	}
	for _, want := range []string{
		"Hello! I'm Duke\nWhat can I do for you?\n",
		"Now you have 1 task in the list.\n",
		"OOPS!!! ",
		"1.[T][ ] read book\n",
		"Bye. Hope to see you again soon!\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("repl output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "never") {
		t.Errorf("input after bye was handled:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, dukedir.TaskPath(".")))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 1 {
		t.Errorf("task file has %d records, want 1:\n%s", lines, data)
	}
}

func TestInitCommandCreatesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{ProjectRoot: tmpDir}

	if _, err := captureStdout(t, func() error { return initCommand(cfg, nil) }); err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}

	schemaData, err := os.ReadFile(dukedir.SchemaPath(tmpDir))
	if err != nil {
		t.Fatalf("ReadFile(schemaPath) error = %v", err)
	}
	if string(schemaData) != storage.BundledSchema() {
		t.Error("schema file does not match bundled schema")
	}

	configData, err := os.ReadFile(dukedir.ConfigPath(tmpDir))
	if err != nil {
		t.Fatalf("ReadFile(configPath) error = %v", err)
	}
	if string(configData) != config.ExampleConfig() {
		t.Error("config file does not match example config")
	}
}

func TestInitCommandSkipsExistingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{ProjectRoot: tmpDir}

	configPath := dukedir.ConfigPath(tmpDir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatalf("WriteFile(configPath) error = %v", err)
	}

	out, err := captureStdout(t, func() error { return initCommand(cfg, nil) })
	if err != nil {
		t.Fatalf("initCommand() error = %v", err)
	}
	if !strings.Contains(out, "Skipped") {
		t.Errorf("expected skip message, got %q", out)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile(configPath) error = %v", err)
	}
	if string(data) != "existing" {
		t.Errorf("config file was overwritten without -force")
	}
	if _, err := os.Stat(dukedir.SchemaPath(tmpDir)); err != nil {
		t.Fatalf("expected schema file to be created: %v", err)
	}

	if _, err := captureStdout(t, func() error { return initCommand(cfg, []string{"-force"}) }); err != nil {
		t.Fatalf("initCommand(-force) error = %v", err)
	}
	data, err = os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != config.ExampleConfig() {
		t.Errorf("config file was not overwritten with -force")
	}
}

func TestInitThenRun(t *testing.T) {
	isolate(t)

	if _, err := run(t, "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	// The written config must load cleanly and point at the written schema.
	if _, err := run(t, "-schema", dukedir.SchemaPath("."), "exec", "event", "party", "/at", "Sat"); err != nil {
		t.Fatalf("exec after init error = %v", err)
	}
	out, err := run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor after init error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 valid records") {
		t.Errorf("doctor output missing record count:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir := isolate(t)

	for _, args := range [][]string{
		{"exec", "todo", "read book"},
		{"exec", "event", "party", "/at", "Sat 2pm"},
	} {
		if _, err := run(t, args...); err != nil {
			t.Fatalf("%v error = %v", args, err)
		}
	}

	out, err := run(t, "export")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	var records []storage.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("export json is invalid: %v\n%s", err, out)
	}
	if len(records) != 2 || records[1].Kind != "event" || records[1].When != "Sat 2pm" {
		t.Errorf("exported records = %+v", records)
	}

	outFile := filepath.Join(dir, "tasks.yaml")
	if _, err := run(t, "export", "-format", "yaml", "-o", outFile); err != nil {
		t.Fatalf("export yaml error = %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var yamlRecords []storage.Record
	if err := yaml.Unmarshal(data, &yamlRecords); err != nil {
		t.Fatalf("export yaml is invalid: %v\n%s", err, data)
	}
	if len(yamlRecords) != 2 || yamlRecords[0].Description != "read book" {
		t.Errorf("exported yaml records = %+v", yamlRecords)
	}

	if _, err := run(t, "export", "-format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDoctorCommandWithInvalidRecords(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, dukedir.TaskPath("."))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"id":"a","kind":"todo","description":"ok","done":false}
{"id":"b","kind":"deadline","description":"no time","done":false}
not json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "doctor")
	if err == nil || !strings.Contains(err.Error(), "doctor checks failed") {
		t.Fatalf("doctor error = %v, want checks failed", err)
	}
	if !strings.Contains(out, "2 of 3 records invalid") {
		t.Errorf("doctor output missing invalid count:\n%s", out)
	}

	// The lenient loader still serves the valid record.
	out, err = run(t, "ls")
	if err != nil {
		t.Fatalf("ls error = %v", err)
	}
	if !strings.Contains(out, "1.[T][ ] ok") {
		t.Errorf("ls output = %q", out)
	}

	if _, err := run(t, "-strict", "ls"); err == nil {
		t.Error("expected strict load to fail")
	}
}

func TestTailCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "tail")
	if err != nil {
		t.Fatalf("tail error = %v", err)
	}
	if !strings.Contains(out, "No log files found.") {
		t.Errorf("tail output = %q", out)
	}

	if _, err := run(t, "-log-level", "debug", "exec", "todo", "read book"); err != nil {
		t.Fatalf("exec error = %v", err)
	}
	out, err = run(t, "tail", "-n", "50")
	if err != nil {
		t.Fatalf("tail error = %v", err)
	}
	if !strings.Contains(out, "Tailing:") || !strings.Contains(out, "command applied") {
		t.Errorf("tail output missing session log:\n%s", out)
	}
}
