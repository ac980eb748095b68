// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Modes say where a calculation came from.
const (
	ModeEval   = "eval"
	ModeGraph  = "graph"
	ModeKeypad = "keypad"
)

// DefaultRecent is the number of entries Recent returns for limit <= 0.
const DefaultRecent = 20

// Entry is one recorded calculation.
type Entry struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Canonical  string    `json:"canonical"`
	Result     string    `json:"result"`
	Mode       string    `json:"mode"`
	CreatedAt  time.Time `json:"created_at"`
}

// Record stores e and prunes the history to the configured size. The
// stored entry (with ID and time) is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return Entry{}, err
	}

	if strings.TrimSpace(e.Expression) == "" {
		return Entry{}, fmt.Errorf("storage: empty expression")
	}
	if e.Mode == "" {
		e.Mode = ModeEval
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO history (expression, canonical, result, mode, created_at) VALUES (?, ?, ?, ?, ?)",
		e.Expression, e.Canonical, e.Result, e.Mode, millis(e.CreatedAt))
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record history: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return Entry{}, fmt.Errorf("failed to record history: %w", err)
	}
	e.CreatedAt = fromMillis(millis(e.CreatedAt))

	if s.maxEntries > 0 {
		pruned, err := db.ExecContext(ctx,
			"DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)",
			s.maxEntries)
		if err != nil {
			return e, fmt.Errorf("failed to prune history: %w", err)
		}
		if n, _ := pruned.RowsAffected(); n > 0 {
			log.Printf("HISTORY_PRUNED | removed=%d keep=%d", n, s.maxEntries)
		}
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecent
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, expression, canonical, result, mode, created_at FROM history ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Expression, &e.Canonical, &e.Result, &e.Mode, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.CreatedAt = fromMillis(created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear deletes the whole history and returns how many entries went.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}
