// Package history persists terminal job outcomes to SQLite. The store is an
// audit log for the history command, not a work queue: nothing is ever
// re-driven from it.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"subburn/internal/workflow"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases must be deleted, not migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Store records job outcomes in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create history schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read history schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Record stores one terminal job outcome.
func (s *Store) Record(ctx context.Context, outcome workflow.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_history (
            job_id, chat_id, filename, status, detail, segments,
            started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.JobID,
		outcome.ChatID,
		outcome.Filename,
		outcome.Status,
		outcome.Detail,
		outcome.Segments,
		outcome.StartedAt.UTC().Format(time.RFC3339Nano),
		outcome.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert job outcome: %w", err)
	}
	return nil
}

// Entry is one stored job outcome.
type Entry struct {
	ID         int64
	JobID      string
	ChatID     int64
	Filename   string
	Status     string
	Detail     string
	Segments   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recent returns the most recently finished jobs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, chat_id, filename, status, detail, segments,
            started_at, finished_at
         FROM job_history ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query job history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var startedAt, finishedAt string
		if err := rows.Scan(
			&entry.ID, &entry.JobID, &entry.ChatID, &entry.Filename,
			&entry.Status, &entry.Detail, &entry.Segments,
			&startedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job history row: %w", err)
		}
		entry.StartedAt = parseTimestamp(startedAt)
		entry.FinishedAt = parseTimestamp(finishedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job history: %w", err)
	}
	return entries, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
