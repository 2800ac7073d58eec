// Package journal persists watch events to a local SQLite database so past
// runs can be inspected later with the history command.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/d8barcelos/file-watcher/internal/journal/migrations"
	"github.com/d8barcelos/file-watcher/internal/watch"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Journal is an event sink backed by SQLite. Each event is inserted as its
// own row at emit time; there is no buffering.
type Journal struct {
	db      *sql.DB
	watchID string
	dir     string
	clock   watch.Clock
	path    string
}

var _ watch.Sink = (*Journal)(nil)

// Entry is one recorded event as returned by Recent.
type Entry struct {
	ID         int64
	WatchID    string
	Dir        string
	Kind       string
	FileName   string
	ObservedAt time.Time
	RecordedAt time.Time
}

// Open opens the journal database at path, creating it and its parent
// directory as needed, and brings the schema up to date. path can be
// ":memory:" for an in-memory database.
func Open(path, watchID, dir string, clock watch.Clock) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}

	return &Journal{
		db:      db,
		watchID: watchID,
		dir:     dir,
		clock:   clock,
		path:    path,
	}, nil
}

// Emit records one event.
func (j *Journal) Emit(event watch.Event) error {
	_, err := j.db.Exec(
		`INSERT INTO events (watch_id, dir, kind, file_name, observed_at, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		j.watchID, j.dir, event.Kind.String(), event.Name, event.Time, j.clock.Now(),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, watch_id, dir, kind, file_name, observed_at, recorded_at
		 FROM events
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.WatchID, &e.Dir, &e.Kind, &e.FileName, &e.ObservedAt, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading event rows: %w", err)
	}
	return entries, nil
}

// Path returns the database file path (or ":memory:").
func (j *Journal) Path() string {
	return j.path
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
