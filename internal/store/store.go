// Package store provides SQLite-backed persistence for the notes demo.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a local SQLite database of notes.
type Store struct {
	db *sql.DB
}

// Note is one stored note.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tag       string    `json:"tag"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens (or creates) the database at dbPath, auto-creating the parent
// directory and the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for WAL mode simplicity.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		tag        TEXT NOT NULL DEFAULT '',
		pinned     INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

// Add inserts a note.
func (s *Store) Add(ctx context.Context, n Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, text, tag, pinned, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Text, n.Tag, n.Pinned, n.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// List returns notes, newest first (pinned notes before the rest). A
// non-empty tag restricts the result; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int, tag string) ([]Note, error) {
	q := `SELECT id, text, tag, pinned, created_at FROM notes`
	var args []any
	if tag != "" {
		q += ` WHERE tag = ?`
		args = append(args, tag)
	}
	q += ` ORDER BY pinned DESC, created_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Text, &n.Tag, &n.Pinned, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
