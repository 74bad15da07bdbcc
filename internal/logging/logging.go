// Package logging sets up charmbracelet/log loggers and per-session log files.
package logging

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LogExt is the file extension of session logs.
const LogExt = ".log"

// SessionLog is the log file of one duke session.
type SessionLog struct {
	Dir  string
	ID   string
	Path string
	file *os.File
}

// NewSessionLog creates the project log directory under baseDir and opens a
// new log file for this session.
func NewSessionLog(baseDir, workDir string) (*SessionLog, error) {
	logDir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := sessionID()
	path := filepath.Join(logDir, id+LogExt)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &SessionLog{
		Dir:  logDir,
		ID:   id,
		Path: path,
		file: file,
	}, nil
}

// Writer returns the log file.
func (s *SessionLog) Writer() io.Writer {
	return s.file
}

// Close closes the log file.
func (s *SessionLog) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// FindLogDir returns the log directory of the project containing workDir.
// Relative base directories are resolved against workDir.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", errors.New("log_dir is not set")
	}
	if workDir == "" {
		workDir = "."
	}
	work, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve work dir: %w", err)
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(work, baseDir)
	}
	return filepath.Join(filepath.Clean(baseDir), projectSlug(gitTopLevel(work))), nil
}

// FindLatestLog returns the most recently modified session log in logDir,
// or "" if there is none.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Session IDs sort by start time, which breaks ties in mod time.
		if latest == "" || info.ModTime().After(latestTime) ||
			(info.ModTime().Equal(latestTime) && filepath.Join(logDir, entry.Name()) > latest) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog copies the last n lines of path to w (all lines when n <= 0).
// With follow set it keeps copying new data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}
	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// tailSeek positions file at the start of its last n lines.
func tailSeek(file *os.File, n int) error {
	const chunkSize = 4096

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	size := stat.Size()

	// A trailing newline ends the last line; it does not start a new one.
	end := size
	if end > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, end-1); err != nil {
			return err
		}
		if last[0] == '\n' {
			end--
		}
	}

	buf := make([]byte, chunkSize)
	newlines := 0
	for pos := end; pos > 0; {
		start := pos - chunkSize
		if start < 0 {
			start = 0
		}
		chunk := buf[:pos-start]
		if _, err := file.ReadAt(chunk, start); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			if chunk[i] != '\n' {
				continue
			}
			newlines++
			if newlines == n {
				_, err := file.Seek(start+int64(i)+1, io.SeekStart)
				return err
			}
		}
		pos = start
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

// gitTopLevel returns the root of the git work tree containing dir, or dir
// itself outside a repository.
func gitTopLevel(dir string) string {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return dir
	}
	if top := strings.TrimSpace(string(out)); top != "" {
		return top
	}
	return dir
}

var unsafeSlugChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// projectSlug names a project's log directory: a readable base name plus a
// short hash of the full path.
func projectSlug(root string) string {
	name := strings.Trim(unsafeSlugChars.ReplaceAllString(filepath.Base(root), "_"), "_")
	if name == "" {
		name = "project"
	}
	sum := sha1.Sum([]byte(root))
	return name + "-" + hex.EncodeToString(sum[:4])
}

// sessionID sorts by start time; the pid separates sessions started in the
// same second.
func sessionID() string {
	return time.Now().UTC().Format("20060102T150405Z") + "-" + strconv.Itoa(os.Getpid())
}
