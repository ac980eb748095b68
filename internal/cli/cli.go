// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and shared command helpers for typebuddy.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdPad Command = iota
	CmdEval
	CmdGraph
	CmdCalc
	CmdSuggest
	CmdKeys
	CmdPrefs
	CmdHistory
	CmdNotes
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name used in JSON responses.
func (c Command) String() string {
	switch c {
	case CmdPad:
		return "pad"
	case CmdEval:
		return "eval"
	case CmdGraph:
		return "graph"
	case CmdCalc:
		return "calc"
	case CmdSuggest:
		return "suggest"
	case CmdKeys:
		return "keys"
	case CmdPrefs:
		return "prefs"
	case CmdHistory:
		return "history"
	case CmdNotes:
		return "notes"
	case CmdServe:
		return "serve"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Unknown is the unrecognised command word for CmdUnknown.
	Unknown string

	// Raw args (remaining after the command word and global flags)
	Raw []string
}

const usageText = `typebuddy - a typing and calculator pad for the terminal

Usage:
  typebuddy                        Start the pad (default)
  typebuddy pad                    Start the pad
  typebuddy eval <expr>            Evaluate an expression
  typebuddy <expr>                 Shortcut for eval
  typebuddy graph <expr>           Plot an expression of x
  typebuddy calc                   Interactive calculator
  typebuddy suggest <text>         Word suggestions for typed text
  typebuddy keys                   Keypad and notation reference
  typebuddy prefs [subcommand]     Keyboard and voice preferences
  typebuddy history [list|clear]   Calculation history
  typebuddy notes [subcommand]     Saved notes
  typebuddy serve                  Run the local HTTP API
  typebuddy config [show|set|path] Configuration
  typebuddy version                Show version
  typebuddy help                   Show this help

Eval:
  typebuddy eval "2+3×4"           14
  typebuddy eval "√(16)" --canonical
                                   sqrt(16) = 4
  typebuddy eval 5! --no-history   Do not record in history

Graph:
  typebuddy graph "x^2" --from -3 --to 3
    --from N, --to N               x range (default from config)
    --points N                     Sampling intervals (max 10000)
    --var X                        Variable letter (default x)
    --width N, --height N          Plot size in cells

Preferences:
  typebuddy prefs show             Show current preferences
  typebuddy prefs set <key> <value> [--pin PIN]
                                   Change one preference
  typebuddy prefs keys             List settable preference keys
  typebuddy prefs reset-layout <layout> [--pin PIN]
                                   Restore a keyboard's default keys
  typebuddy prefs lock [--pin OLD] [--new-pin NEW]
                                   Set or change the caregiver PIN
  typebuddy prefs unlock [--pin PIN]
                                   Remove the caregiver PIN
  typebuddy prefs path             Show the preferences file

History and notes:
  typebuddy history list [--limit N]
  typebuddy history clear [--confirm]
  typebuddy notes list
  typebuddy notes show <id>
  typebuddy notes add <text> [--title T]
  typebuddy notes delete <id> [--confirm]

Server:
  typebuddy serve [--host H] [--port N]

Global flags:
  --json                           Output in JSON format
  -q, --quiet                      Less output
  -v, --verbose                    More output
  --                               End of flags (for expressions like -x^2)

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "typebuddy version %s\n", Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args (without the program name).
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to the pad
	if len(remaining) == 0 {
		return CmdPad, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "pad", "tui":
		return CmdPad, parsedArgs

	case "eval", "e", "=":
		return CmdEval, parsedArgs

	case "graph", "plot":
		return CmdGraph, parsedArgs

	case "calc", "repl":
		return CmdCalc, parsedArgs

	case "suggest", "words":
		return CmdSuggest, parsedArgs

	case "keys", "keypad":
		return CmdKeys, parsedArgs

	case "prefs", "preferences":
		return CmdPrefs, parsedArgs

	case "history", "hist":
		return CmdHistory, parsedArgs

	case "notes", "note":
		return CmdNotes, parsedArgs

	case "serve", "server":
		return CmdServe, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	case "--":
		parsedArgs.Raw = append([]string{"--"}, remaining...)
		return CmdEval, parsedArgs

	default:
		// A bare expression is an eval shortcut: "typebuddy 2+2".
		if looksLikeExpression(cmd) {
			parsedArgs.Raw = append([]string{remaining0(args, cmd)}, remaining...)
			return CmdEval, parsedArgs
		}
		parsedArgs.Unknown = cmd
		return CmdUnknown, parsedArgs
	}
}

// remaining0 recovers the original spelling of the command word, which
// ParseArgs lowercased.
func remaining0(args []string, lowered string) string {
	for _, a := range args {
		if strings.ToLower(a) == lowered {
			return a
		}
	}
	return lowered
}

// looksLikeExpression reports whether word is a closed expression the
// calculator can parse. Command names never contain digits or operators,
// so typos are not mistaken for expressions.
func looksLikeExpression(word string) bool {
	if !strings.ContainsAny(word, "0123456789()+*/^×÷√∛π!%") {
		return false
	}
	_, err := calc.Compile(word, "")
	return err == nil
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Flags after "--" are left alone.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i, arg := range args {
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig returns the process configuration.
func loadConfig() *config.Config {
	return config.Global()
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args) error {
	if args.JSON {
		return printJSON("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp() error {
	PrintUsage()
	return nil
}

// HandleUnknown reports an unknown command, suggesting the closest one.
func HandleUnknown(args Args) error {
	err := NewNotFoundError("command", args.Unknown)
	if !args.JSON {
		if s := SuggestCommand(args.Unknown); s != "" {
			fmt.Fprintf(stderr, "Did you mean %s?\n", SuccessStyle.Render("typebuddy "+s))
		} else {
			fmt.Fprintln(stderr, DimStyle.Render("Run 'typebuddy help' for usage."))
		}
	}
	return err
}
