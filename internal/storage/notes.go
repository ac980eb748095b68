// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/typebuddy/internal/util"
)

// MaxTitleWidth bounds a title derived from the note body.
const MaxTitleWidth = 40

var (
	// ErrEmptyNote is returned when saving a note with no text.
	ErrEmptyNote = errors.New("storage: note is empty")

	// ErrInvalidID is returned for a note ID that is not a UUID.
	ErrInvalidID = errors.New("storage: invalid note id")
)

// Note is a piece of typed text kept for later.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitleFromBody returns the first non-blank line of body, cut to
// MaxTitleWidth cells.
func TitleFromBody(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return util.TruncateWidth(line, MaxTitleWidth)
		}
	}
	return ""
}

// SaveNote creates n (when ID is empty) or updates it. A blank title is
// derived from the body. The stored note is returned.
func (s *Store) SaveNote(ctx context.Context, n Note) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return Note{}, err
	}

	if strings.TrimSpace(n.Body) == "" {
		return Note{}, ErrEmptyNote
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	} else if _, err := uuid.Parse(n.ID); err != nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidID, n.ID)
	}
	if strings.TrimSpace(n.Title) == "" {
		n.Title = TitleFromBody(n.Body)
	}

	now := millis(s.now())
	_, err = db.ExecContext(ctx, `
		INSERT INTO notes (id, title, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, body = excluded.body, updated_at = excluded.updated_at
	`, n.ID, n.Title, n.Body, now, now)
	if err != nil {
		return Note{}, fmt.Errorf("failed to save note: %w", err)
	}

	return noteByID(ctx, db, n.ID)
}

// Note returns the note with id.
func (s *Store) Note(ctx context.Context, id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return Note{}, err
	}
	return noteByID(ctx, db, id)
}

func noteByID(ctx context.Context, db *sql.DB, id string) (Note, error) {
	var n Note
	var created, updated int64
	err := db.QueryRowContext(ctx,
		"SELECT id, title, body, created_at, updated_at FROM notes WHERE id = ?", id,
	).Scan(&n.ID, &n.Title, &n.Body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to load note: %w", err)
	}
	n.CreatedAt = fromMillis(created)
	n.UpdatedAt = fromMillis(updated)
	return n, nil
}

// Notes returns every note, most recently updated first.
func (s *Store) Notes(ctx context.Context) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, title, body, created_at, updated_at FROM notes ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var created, updated int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.CreatedAt = fromMillis(created)
		n.UpdatedAt = fromMillis(updated)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNote removes the note with id.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	return nil
}
