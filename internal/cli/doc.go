// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// typebuddy.
//
// Every command has a non-interactive form usable from scripts, and all of
// them accept --json, which writes a single JSONResponse document to
// stdout.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global flags
//   - ArgParser: Per-command flag and positional parsing
//   - JSONResponse: The --json output envelope
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdEval:
//	    err = cli.HandleEval(args)
//	case cli.CmdGraph:
//	    err = cli.HandleGraph(args)
//	// ... other commands
//	}
//	os.Exit(cli.GetExitCode(err))
//
// # Commands Overview
//
// Calculator:
//   - eval: Evaluate one expression (also "typebuddy 2+2")
//   - graph: Plot an expression of one variable
//   - calc: Interactive calculator with history
//   - keys: Keypad and notation reference
//
// Typing:
//   - pad: Full-screen typing and calculator pad
//   - suggest: Word suggestions
//   - notes: Saved text
//
// Settings and services:
//   - prefs: Keyboard and voice preferences, caregiver PIN
//   - history: Calculation history
//   - serve: Local HTTP API
//   - config: Configuration management
package cli
