package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nibzard/duke-go/internal/task"
)

// SQLiteGateway stores tasks in a SQLite database. Like FileGateway, a
// lenient Load keeps the rows it skipped and RewriteAll stores them again.
type SQLiteGateway struct {
	db      *sql.DB
	path    string
	strict  bool
	logger  *log.Logger
	skipped []Record
}

// NewSQLiteGateway opens or creates the database at path.
func NewSQLiteGateway(path string, opts Options) (*SQLiteGateway, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps the writes of a session strictly ordered.
	db.SetMaxOpenConns(1)

	g := &SQLiteGateway{db: db, path: path, strict: opts.Strict, logger: opts.logger()}
	if err := g.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return g, nil
}

func (g *SQLiteGateway) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			position INTEGER NOT NULL UNIQUE,
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK (kind IN ('todo', 'deadline', 'event')),
			description TEXT NOT NULL,
			when_at TEXT NOT NULL DEFAULT '',
			done INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := g.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (g *SQLiteGateway) Path() string {
	return g.path
}

// Load returns every task ordered by position.
func (g *SQLiteGateway) Load() ([]task.Task, error) {
	rows, err := g.db.Query(`SELECT id, kind, description, when_at, done FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	g.skipped = nil
	var tasks []task.Task
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Description, &rec.When, &rec.Done); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t, err := rec.Task()
		if err != nil {
			if g.strict {
				return nil, fmt.Errorf("task %s: %w", rec.ID, err)
			}
			g.logger.Warn("skipping invalid record", "db", g.path, "id", rec.ID, "err", err)
			g.skipped = append(g.skipped, rec)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	g.logger.Debug("loaded tasks", "db", g.path, "count", len(tasks), "skipped", len(g.skipped))
	return tasks, nil
}

// AppendRecord inserts t after the last stored task.
func (g *SQLiteGateway) AppendRecord(t task.Task) error {
	rec := FromTask(t)
	_, err := g.db.Exec(`
		INSERT INTO tasks (position, id, kind, description, when_at, done)
		VALUES ((SELECT COALESCE(MAX(position), -1) + 1 FROM tasks), ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, rec.Description, rec.When, rec.Done)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// RewriteAll replaces every row with tasks, followed by the rows the last
// Load skipped, in a single transaction.
func (g *SQLiteGateway) RewriteAll(tasks []task.Task) error {
	tx, err := g.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (position, id, kind, description, when_at, done) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	records := append(FromTasks(tasks), g.skipped...)
	for i, rec := range records {
		if _, err := stmt.Exec(i, rec.ID, rec.Kind, rec.Description, rec.When, rec.Done); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	g.logger.Debug("rewrote tasks", "db", g.path, "count", len(tasks))
	return nil
}

// Close closes the database connection.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
