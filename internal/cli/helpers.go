// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface functionality.
// This file contains shared helper functions used across multiple CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
	"github.com/jeranaias/typebuddy/internal/prefs"
	"github.com/jeranaias/typebuddy/internal/storage"
)

// commandTimeout bounds database work done by one-shot commands.
const commandTimeout = 10 * time.Second

// formatAge formats the time since t for history and note listings.
func formatAge(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// commandContext returns a context bounded by commandTimeout.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// openStorage opens the history and notes database named by cfg.
func openStorage(cfg *config.Config) (*storage.Store, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.Open(cfg.HistoryPath())
	if err != nil {
		return nil, err
	}
	store.SetMaxEntries(cfg.History.MaxEntries)
	return store, nil
}

// openPrefs loads the preferences file inside cfg's data directory. A
// corrupt file is reported on stderr and defaults are used.
func openPrefs(cfg *config.Config) (*prefs.Store, error) {
	store := prefs.NewStore(prefs.DefaultPath(cfg.DataDir))
	if err := store.Load(); err != nil {
		if !errors.Is(err, prefs.ErrCorrupt) {
			return nil, err
		}
		fmt.Fprintf(stderr, "%s %v (using defaults)\n", WarningStyle.Render("Warning:"), err)
	}
	return store, nil
}

// recordHistory stores a calculation when history is enabled. Failures
// are reported but never fail the command.
func recordHistory(cfg *config.Config, expression, canonical, result, mode string) {
	if !cfg.History.Enabled {
		return
	}
	store, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s history unavailable: %v\n", WarningStyle.Render("Warning:"), err)
		return
	}
	defer store.Close()

	ctx, cancel := commandContext()
	defer cancel()
	if _, err := store.Record(ctx, storage.Entry{
		Expression: expression,
		Canonical:  canonical,
		Result:     result,
		Mode:       mode,
	}); err != nil {
		fmt.Fprintf(stderr, "%s history not saved: %v\n", WarningStyle.Render("Warning:"), err)
	}
}

// expressionArg joins the positional arguments from start into one
// expression, so unquoted input like "2 + 3" works.
func expressionArg(p *ArgParser, start int, usage string) (string, error) {
	expr := strings.TrimSpace(JoinPositionalArgs(p, start))
	if expr == "" {
		return "", ErrMissingArgument("expression", usage)
	}
	if len(expr) > maxExpressionLength {
		return "", NewValidationError("expression", "", fmt.Sprintf("longer than %d bytes", maxExpressionLength))
	}
	return expr, nil
}

// maxExpressionLength matches the HTTP API limit.
const maxExpressionLength = 4096

// evaluate compiles and evaluates a closed expression, returning the
// canonical form even when evaluation fails.
func evaluate(expr string) (canonical string, value float64, err error) {
	prog, err := calc.Compile(expr, "")
	if err != nil {
		return calc.Normalize(expr), 0, err
	}
	value, err = prog.Eval(0)
	return prog.Canonical(), value, err
}
