// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// notes_cmd.go - Notes command implementation for typebuddy.
//
// Command: notes [subcommand]
// Short:   Keep typed text for later
// Aliases: note
//
// Subcommands:
//   list (default)      List notes, most recently changed first
//   show <id>           Print one note
//   add <text...>       Save a new note
//   delete <id>         Delete a note
//
// A note ID may be shortened to any unique prefix, as shown by list.
//
// Examples:
//   typebuddy notes add "i like to play with my dog"
//   typebuddy notes add --title Shopping milk eggs bread
//   typebuddy notes show 3f2a
//   typebuddy notes delete 3f2a --confirm
//
// Flags:
//   --title T           Title for add (default: first line of the text)
//   --confirm           Skip the confirmation prompt for delete
//   --json              Output in JSON format
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/typebuddy/internal/storage"
)

// shortIDLength is how much of a note ID list shows.
const shortIDLength = 8

// HandleNotes handles the "notes" command.
func HandleNotes(args Args) error {
	p := NewArgParser(args.Raw)
	sub := strings.ToLower(p.Subcommand())

	switch sub {
	case "", "list", "ls", "show", "add", "new", "delete", "rm":
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown notes subcommand",
			"typebuddy notes [list|show|add|delete]")
	}

	store, err := openStorage(loadConfig())
	if err != nil {
		return NewCommandError("notes", "open", "could not open notes", err)
	}
	defer store.Close()

	ctx, cancel := commandContext()
	defer cancel()

	switch sub {
	case "show":
		return handleNotesShow(ctx, store, p, args)
	case "add", "new":
		return handleNotesAdd(ctx, store, p, args)
	case "delete", "rm":
		return handleNotesDelete(ctx, store, p, args)
	default:
		return handleNotesList(ctx, store, args)
	}
}

// resolveNote finds the note whose ID starts with prefix. The prefix must
// match exactly one note.
func resolveNote(ctx context.Context, store *storage.Store, prefix string) (storage.Note, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return storage.Note{}, ErrMissingArgument("id", "typebuddy notes show 3f2a")
	}
	notes, err := store.Notes(ctx)
	if err != nil {
		return storage.Note{}, err
	}
	var matches []storage.Note
	for _, n := range notes {
		if n.ID == prefix {
			return n, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return storage.Note{}, NewNotFoundError("note", prefix)
	case 1:
		return matches[0], nil
	default:
		return storage.Note{}, NewValidationError("id", prefix, fmt.Sprintf("matches %d notes; use more characters", len(matches)))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func handleNotesList(ctx context.Context, store *storage.Store, args Args) error {
	notes, err := store.Notes(ctx)
	if err != nil {
		return NewCommandError("notes", "list", "could not read notes", err)
	}
	if notes == nil {
		notes = []storage.Note{}
	}

	if args.JSON {
		return printJSON("notes", NotesData{Notes: notes, Count: len(notes)})
	}
	if len(notes) == 0 {
		fmt.Fprintln(stdout, DimStyle.Render("No notes yet. Add one with: typebuddy notes add <text>"))
		return nil
	}
	now := time.Now()
	for _, n := range notes {
		fmt.Fprintf(stdout, "%s  %s  %s\n",
			DimStyle.Render(shortID(n.ID)), ValueStyle.Render(n.Title), DimStyle.Render(formatAge(n.UpdatedAt, now)))
	}
	return nil
}

func handleNotesShow(ctx context.Context, store *storage.Store, p *ArgParser, args Args) error {
	n, err := resolveNote(ctx, store, p.Positional(1))
	if err != nil {
		return err
	}
	if args.JSON {
		return printJSON("notes show", n)
	}
	if !args.Quiet {
		fmt.Fprintln(stdout, TitleStyle.Render(n.Title))
		fmt.Fprintln(stdout, DimStyle.Render(fmt.Sprintf("%s · updated %s", n.ID, n.UpdatedAt.Format("2006-01-02 15:04"))))
		fmt.Fprintln(stdout, RenderSeparator())
	}
	fmt.Fprintln(stdout, n.Body)
	return nil
}

func handleNotesAdd(ctx context.Context, store *storage.Store, p *ArgParser, args Args) error {
	body := JoinPositionalArgs(p, 1)
	if strings.TrimSpace(body) == "" {
		return ErrMissingArgument("text", `typebuddy notes add "i like to play"`)
	}
	n, err := store.SaveNote(ctx, storage.Note{Title: p.Flag("title"), Body: body})
	if err != nil {
		return NewCommandError("notes", "add", "note not saved", err)
	}
	if args.JSON {
		return printJSON("notes add", n)
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s Saved %s %s\n", SuccessStyle.Render("✓"), DimStyle.Render(shortID(n.ID)), n.Title)
	}
	return nil
}

func handleNotesDelete(ctx context.Context, store *storage.Store, p *ArgParser, args Args) error {
	n, err := resolveNote(ctx, store, p.Positional(1))
	if err != nil {
		return err
	}
	confirmed, err := RequireConfirmation(p.BoolFlag("confirm"), fmt.Sprintf("delete note %q", n.Title), args.JSON)
	if err != nil {
		return err
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}
	if err := store.DeleteNote(ctx, n.ID); err != nil {
		return NewCommandError("notes", "delete", n.ID, err)
	}
	if args.JSON {
		return printJSON("notes delete", map[string]string{"deleted": n.ID})
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s Deleted %s\n", SuccessStyle.Render("✓"), n.Title)
	}
	return nil
}
