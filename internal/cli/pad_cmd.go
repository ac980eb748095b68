// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// pad_cmd.go - Pad command implementation for typebuddy.
//
// Command: pad (default when no command is given)
// Short:   Full-screen typing and calculator pad
// Aliases: tui
//
// Examples:
//   typebuddy
//   typebuddy pad
//
// Keys:
//   Tab        Switch between typing and calculator
//   Alt+1..5   Use a suggestion (typing)
//   Enter      New line (typing) / evaluate (calculator)
//   Ctrl+S     Save the text as a note
//   Ctrl+Y     Copy the result
//   Ctrl+R     Send the result to the typed text
//   Esc        Quit
package cli

import (
	"fmt"

	"github.com/jeranaias/typebuddy/internal/ui/pad"
)

// HandlePad handles the "pad" command.
func HandlePad(args Args) error {
	if args.JSON {
		return NewValidationErrorWithExample("json", "", "the pad is interactive", `typebuddy suggest "the " --json`)
	}
	if err := RequiresTTY("the pad"); err != nil {
		return err
	}

	cfg := loadConfig()

	sg, err := newSuggester(cfg.Suggest.LexiconPath)
	if err != nil {
		return err
	}

	ps, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	p := ps.Get()

	opts := pad.Options{
		Config:    cfg,
		Suggester: sg,
		Prefs:     &p,
	}

	// Notes need the database even when history is off; the pad checks
	// history.enabled before recording.
	store, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s notes and history unavailable: %v\n", WarningStyle.Render("Warning:"), err)
	} else {
		opts.Store = store
		defer store.Close()
	}

	return pad.Run(opts)
}
