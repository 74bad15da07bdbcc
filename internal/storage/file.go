package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/duke-go/internal/task"
)

const maxRecordSize = 1 << 20

// FileGateway stores tasks in a JSON Lines file.
//
// A lenient Load remembers the lines it skipped; RewriteAll writes them
// back after the tasks so a rewrite never drops records it could not read.
type FileGateway struct {
	path    string
	opts    Options
	logger  *log.Logger
	skipped [][]byte
}

// NewFileGateway returns a gateway for the file at path. The file and its
// directory are created on the first write.
func NewFileGateway(path string, opts Options) *FileGateway {
	return &FileGateway{path: path, opts: opts, logger: opts.logger()}
}

// Path returns the task file path.
func (g *FileGateway) Path() string {
	return g.path
}

// Load reads every record. A missing file is an empty list.
func (g *FileGateway) Load() ([]task.Task, error) {
	v := newValidator(g.opts.SchemaPath)
	for _, w := range v.warnings {
		g.logger.Warn("schema validation degraded", "file", g.path, "reason", w)
	}

	g.skipped = nil
	var tasks []task.Task
	err := scanRecords(g.path, func(line int, data []byte) error {
		t, errs := v.decode(line, data)
		if len(errs) > 0 {
			if g.opts.Strict {
				return fmt.Errorf("load %s: %w", g.path, errs[0])
			}
			for _, e := range errs {
				g.logger.Warn("skipping invalid record", "file", g.path, "err", e)
			}
			g.skipped = append(g.skipped, bytes.Clone(data))
			return nil
		}
		tasks = append(tasks, t)
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.logger.Debug("loaded tasks", "file", g.path, "count", len(tasks), "skipped", len(g.skipped))
	return tasks, nil
}

// AppendRecord adds one record to the end of the file.
func (g *FileGateway) AppendRecord(t task.Task) error {
	var buf bytes.Buffer
	if err := writeRecords(&buf, []task.Task{t}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}
	f, err := os.OpenFile(g.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open task file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("append task: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close task file: %w", err)
	}
	return nil
}

// RewriteAll replaces the file contents with tasks, followed by any lines
// the last Load skipped. The new contents are written to a temporary file
// first and renamed over the old one.
func (g *FileGateway) RewriteAll(tasks []task.Task) error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := writeRecords(tmp, tasks); err != nil {
		tmp.Close()
		return err
	}
	for _, line := range g.skipped {
		if _, err := fmt.Fprintf(tmp, "%s\n", line); err != nil {
			tmp.Close()
			return fmt.Errorf("write skipped record: %w", err)
		}
	}
	if len(g.skipped) > 0 {
		g.logger.Warn("kept unreadable records", "file", g.path, "count", len(g.skipped))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, g.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	g.logger.Debug("rewrote tasks", "file", g.path, "count", len(tasks))
	return nil
}

// Close is a no-op; files are opened per operation.
func (g *FileGateway) Close() error {
	return nil
}

func writeRecords(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, t := range tasks {
		if err := enc.Encode(FromTask(t)); err != nil {
			return fmt.Errorf("write task: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// scanRecords calls fn with each non-blank line of the file at path.
func scanRecords(path string, fn func(line int, data []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		if err := fn(line, data); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read task file: %w", err)
	}
	return nil
}
