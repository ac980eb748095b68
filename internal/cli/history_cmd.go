// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - History command implementation for typebuddy.
//
// Command: history [subcommand]
// Short:   Show or clear calculation history
// Aliases: hist
//
// Subcommands:
//   list (default)      Show recent calculations, newest first
//   clear               Delete all history
//
// Examples:
//   typebuddy history
//   typebuddy history list --limit 50
//   typebuddy history clear --confirm
//   typebuddy history --json
//
// Flags:
//   --limit N           Entries to show (default 20, max 1000)
//   --confirm           Skip the confirmation prompt for clear
//   --json              Output in JSON format
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/util"
)

// maxHistoryLimit bounds --limit.
const maxHistoryLimit = 1000

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	p := NewArgParser(args.Raw)
	sub := strings.ToLower(p.Subcommand())

	switch sub {
	case "", "list", "ls":
	case "clear":
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown history subcommand", "typebuddy history [list|clear]")
	}

	store, err := openStorage(loadConfig())
	if err != nil {
		return NewCommandError("history", "open", "could not open history", err)
	}
	defer store.Close()

	if sub == "clear" {
		return handleHistoryClear(store, p, args)
	}
	return handleHistoryList(store, p, args)
}

func handleHistoryList(store *storage.Store, p *ArgParser, args Args) error {
	limit, err := p.FlagIntOrDefault("limit", storage.DefaultRecent)
	if err != nil {
		return err
	}
	if limit < 1 || limit > maxHistoryLimit {
		return NewValidationError("limit", fmt.Sprint(limit), fmt.Sprintf("must be between 1 and %d", maxHistoryLimit))
	}

	ctx, cancel := commandContext()
	defer cancel()
	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return NewCommandError("history", "list", "could not read history", err)
	}
	if entries == nil {
		entries = []storage.Entry{}
	}

	if args.JSON {
		return printJSON("history", HistoryData{Entries: entries, Count: len(entries)})
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, DimStyle.Render("No calculations yet."))
		return nil
	}
	writeEntries(stdout, entries, time.Now())
	return nil
}

// writeEntries prints history entries as aligned rows.
func writeEntries(w io.Writer, entries []storage.Entry, now time.Time) {
	width := 0
	for _, e := range entries {
		if n := util.StringWidth(e.Expression); n > width {
			width = n
		}
	}
	if width > 40 {
		width = 40
	}
	for _, e := range entries {
		expr := util.PadRight(util.TruncateWidth(e.Expression, width), width)
		result := ResultStyle.Render(e.Result)
		if e.Result == "Error" {
			result = ErrorStyle.Render(e.Result)
		}
		marker := " "
		if e.Mode == storage.ModeGraph {
			marker = "~"
		}
		fmt.Fprintf(w, "%s %s  %s  %s\n", DimStyle.Render(marker), expr, result, DimStyle.Render(formatAge(e.CreatedAt, now)))
	}
}

func handleHistoryClear(store *storage.Store, p *ArgParser, args Args) error {
	confirmed, err := RequireConfirmation(p.BoolFlag("confirm"), "clear calculation history", args.JSON)
	if err != nil {
		return err
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()
	removed, err := store.Clear(ctx)
	if err != nil {
		return NewCommandError("history", "clear", "could not clear history", err)
	}

	if args.JSON {
		return printJSON("history clear", HistoryData{Entries: []storage.Entry{}, Removed: removed})
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s Removed %d entries\n", SuccessStyle.Render("✓"), removed)
	}
	return nil
}
