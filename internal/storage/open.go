package storage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/duke-go/internal/task"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the supported backends.
func Backends() []Backend {
	return []Backend{BackendFile, BackendSQLite}
}

// Gateway is a task store that can be closed.
type Gateway interface {
	Load() ([]task.Task, error)
	AppendRecord(task.Task) error
	RewriteAll([]task.Task) error
	Close() error
}

// Options controls loading and validation.
type Options struct {
	// SchemaPath overrides the bundled JSON Schema.
	SchemaPath string
	// Strict fails a load on the first invalid record instead of skipping it.
	// Skipped records are kept in storage by later rewrites.
	Strict bool
	// Logger receives warnings and debug output. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Open returns the gateway for backend at path.
func Open(backend Backend, path string, opts Options) (Gateway, error) {
	switch backend {
	case BackendFile, "":
		return NewFileGateway(path, opts), nil
	case BackendSQLite:
		return NewSQLiteGateway(path, opts)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (supported: file, sqlite)", backend)
	}
}
