// Package history persists looked-up words with their definition fragment.
//
// A word is stored once: the first fragment fetched for it is kept and
// served on later lookups until the entry is deleted.
package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Schema is the DDL for the history table.
const Schema = `
CREATE TABLE IF NOT EXISTS history (
    id          TEXT PRIMARY KEY,
    word        TEXT NOT NULL UNIQUE,
    definition  TEXT NOT NULL,
    created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at DESC);
`

// Entry is one stored lookup.
type Entry struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	CreatedAt  int64  `json:"created_at"`
}

// Store is the history database handle.
type Store struct {
	DB    *sql.DB
	newID func() string
	now   func() time.Time
}

func newStore(db *sql.DB) *Store {
	return &Store{
		DB:    db,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
		now:   time.Now,
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Add stores definition under word unless the word is already present.
// Returns true when a row was inserted.
func (s *Store) Add(ctx context.Context, word, definition string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO history (id, word, definition, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(word) DO NOTHING`,
		s.newID(), word, definition, s.now().UnixMilli())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the entry for word, or nil if absent.
func (s *Store) Get(ctx context.Context, word string) (*Entry, error) {
	e := &Entry{}
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, word, definition, created_at
		FROM history WHERE word = ?`, word).Scan(
		&e.ID, &e.Word, &e.Definition, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns every entry, newest first.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, word, definition, created_at
		FROM history ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.Word, &e.Definition, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Delete removes word. Returns false if it was not stored.
func (s *Store) Delete(ctx context.Context, word string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM history WHERE word = ?`, word)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored words.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}
