// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation and PIN prompts for typebuddy commands.
//
// Destructive commands follow one pattern:
//   1. If --confirm flag is present, proceed without prompting
//   2. If --json mode, require --confirm flag (no interactive prompts in JSON mode)
//   3. If stdin is not a TTY, require --confirm flag (can't prompt)
//   4. Otherwise, show interactive prompt for confirmation

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// RequireConfirmation checks if the user has confirmed a destructive action.
//
// Example:
//
//	confirmed, err := RequireConfirmation(p.BoolFlag("confirm"), "clear calculation history", args.JSON)
//	if err != nil {
//	    return err
//	}
//	if !confirmed {
//	    ShowCancellationMessage()
//	    return nil
//	}
func RequireConfirmation(confirmFlag bool, action string, jsonMode bool) (bool, error) {
	if confirmFlag {
		return true, nil
	}

	if jsonMode {
		return false, NewValidationErrorWithExample("confirm", "", "confirmation required in JSON mode", "--confirm")
	}

	// Can't prompt if stdin is not a TTY (e.g., piped input, cron jobs, CI/CD)
	if !IsTTY() {
		return false, NewValidationErrorWithExample("confirm", "", "confirmation required but stdin is not a terminal", "--confirm")
	}

	fmt.Fprintf(stdout, "Are you sure you want to %s? [y/N]: ", action)

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}

// ShowCancellationMessage displays a standard cancellation message.
// Use this after RequireConfirmation returns false.
func ShowCancellationMessage() {
	fmt.Fprintln(stdout, DimStyle.Render("Cancelled."))
}

// promptSecret prompts for a PIN without echoing it.
// SECURITY: golang.org/x/term keeps the PIN off the screen.
func promptSecret(prompt string) (string, error) {
	if err := RequiresTTY("enter a PIN"); err != nil {
		return "", err
	}
	fmt.Fprint(stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read PIN: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// pinFrom returns the --<flag> value, or prompts for it when the flag is
// absent, prompting is allowed and needed is true.
func pinFrom(p *ArgParser, flag, prompt string, needed, jsonMode bool) (string, error) {
	if pin := p.Flag(flag); pin != "" {
		return pin, nil
	}
	if !needed || jsonMode || !CanPrompt() {
		return "", nil
	}
	return promptSecret(prompt)
}
