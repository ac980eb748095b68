// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "typebuddy.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistory_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, Entry{Expression: "2+2", Canonical: "2+2", Result: "4"})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected an ID")
	}
	if first.Mode != ModeEval {
		t.Errorf("Mode = %q, want %q", first.Mode, ModeEval)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected a timestamp")
	}

	if _, err := store.Record(ctx, Entry{Expression: "sin(x)", Canonical: "sin(x)", Result: "", Mode: ModeGraph}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Expression != "sin(x)" || entries[1].Expression != "2+2" {
		t.Errorf("entries not newest first: %q, %q", entries[0].Expression, entries[1].Expression)
	}
	if entries[0].Mode != ModeGraph {
		t.Errorf("Mode = %q, want %q", entries[0].Mode, ModeGraph)
	}
}

func TestHistory_RejectsEmptyExpression(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Record(context.Background(), Entry{Expression: "  "}); err == nil {
		t.Error("expected error for empty expression")
	}
}

func TestHistory_Pruning(t *testing.T) {
	store := openTestStore(t)
	store.SetMaxEntries(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		expr := fmt.Sprintf("%d+%d", i, i)
		if _, err := store.Record(ctx, Entry{Expression: expr, Result: fmt.Sprint(2 * i)}); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Expression)
	}
	if strings.Join(got, ",") != "5+5,4+4,3+3" {
		t.Errorf("kept %v, want the newest three", got)
	}
}

func TestHistory_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if _, err := store.Record(ctx, Entry{Expression: "1", Result: "1"}); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}
	entries, _ := store.Recent(ctx, 5)
	if len(entries) != 0 {
		t.Errorf("history not empty after Clear: %v", entries)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typebuddy.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, Entry{Expression: "3*3", Result: "9"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	entries, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Result != "9" {
		t.Errorf("entries after reopen = %v", entries)
	}
}

func TestStore_Closed(t *testing.T) {
	store := openTestStore(t)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}

	ctx := context.Background()
	if _, err := store.Record(ctx, Entry{Expression: "1"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after Close = %v, want ErrClosed", err)
	}
	if _, err := store.Notes(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Notes after Close = %v, want ErrClosed", err)
	}
}

// =============================================================================
// NOTE TESTS
// =============================================================================

func TestNotes_CreateUpdateDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	note, err := store.SaveNote(ctx, Note{Body: "\n  my dog is big  \nand fast"})
	if err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}
	if len(note.ID) != 36 {
		t.Errorf("ID %q is not a UUID", note.ID)
	}
	if note.Title != "my dog is big" {
		t.Errorf("Title = %q, want first line", note.Title)
	}

	clock = clock.Add(time.Minute)
	note.Body = "my cat is small"
	note.Title = "Cats"
	updated, err := store.SaveNote(ctx, note)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Cats" || updated.Body != "my cat is small" {
		t.Errorf("update not stored: %+v", updated)
	}
	if !updated.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", note.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(note.UpdatedAt) {
		t.Errorf("UpdatedAt did not advance: %v", updated.UpdatedAt)
	}

	got, err := store.Note(ctx, note.ID)
	if err != nil {
		t.Fatalf("Note failed: %v", err)
	}
	if got.Body != "my cat is small" {
		t.Errorf("Body = %q", got.Body)
	}

	if err := store.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := store.Note(ctx, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Note after delete = %v, want ErrNotFound", err)
	}
	if err := store.DeleteNote(ctx, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestNotes_ListOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	a, err := store.SaveNote(ctx, Note{Body: "first"})
	if err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(time.Second)
	if _, err := store.SaveNote(ctx, Note{Body: "second"}); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(time.Second)
	a.Body = "first, edited"
	if _, err := store.SaveNote(ctx, a); err != nil {
		t.Fatal(err)
	}

	notes, err := store.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len(notes) = %d, want 2", len(notes))
	}
	if notes[0].Body != "first, edited" {
		t.Errorf("most recently updated note should come first, got %q", notes[0].Body)
	}
}

func TestNotes_Validation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveNote(ctx, Note{Body: " \n "}); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("blank body = %v, want ErrEmptyNote", err)
	}
	if _, err := store.SaveNote(ctx, Note{ID: "not-a-uuid", Body: "x"}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("bad id = %v, want ErrInvalidID", err)
	}

	// A caller-chosen UUID creates the note.
	id := "3f2c1a52-9a59-4d0e-8f39-5c8f0f6d2b11"
	note, err := store.SaveNote(ctx, Note{ID: id, Body: "hello"})
	if err != nil {
		t.Fatalf("SaveNote with id failed: %v", err)
	}
	if note.ID != id {
		t.Errorf("ID = %q, want %q", note.ID, id)
	}
}

func TestTitleFromBody(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"hello", "hello"},
		{"\n\n  second line wins\nthird", "second line wins"},
		{"", ""},
		{strings.Repeat("a", 50), strings.Repeat("a", 37) + "..."},
	}
	for _, tt := range tests {
		if got := TitleFromBody(tt.body); got != tt.want {
			t.Errorf("TitleFromBody(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
