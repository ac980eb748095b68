// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest_cmd.go - Suggest command implementation for typebuddy.
//
// Command: suggest <text>
// Short:   Word suggestions for the word being typed
// Aliases: words
//
// Examples:
//   typebuddy suggest "i want to pl"        play, please, ...
//   typebuddy suggest "hello th" --max 3
//   typebuddy suggest "" --json             Sentence starters
//   typebuddy suggest "ca" --lexicon words.yaml
//
// Flags:
//   --max N             Maximum suggestions (default: suggest.max)
//   --lexicon PATH      YAML word list (default: suggest.lexicon_path)
//   --json              Output in JSON format
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/typebuddy/internal/suggest"
)

// maxSuggestions bounds --max.
const maxSuggestions = 20

// newSuggester builds a suggester from path, or the built-in lexicon when
// path is empty.
func newSuggester(path string) (*suggest.Suggester, error) {
	if path == "" {
		return suggest.New(nil), nil
	}
	lex, err := suggest.LoadLexiconFile(path)
	if err != nil {
		return nil, NewCommandError("suggest", "load lexicon", path, err)
	}
	return suggest.New(lex), nil
}

// HandleSuggest handles the "suggest" command.
func HandleSuggest(args Args) error {
	cfg := loadConfig()
	p := NewArgParser(args.Raw)

	// Whitespace is significant: "hello " asks for the next word.
	text := strings.Join(p.PositionalFrom(0), " ")

	limit, err := p.FlagIntOrDefault("max", cfg.Suggest.Max)
	if err != nil {
		return err
	}
	if limit < 1 || limit > maxSuggestions {
		return NewValidationError("max", fmt.Sprint(limit), fmt.Sprintf("must be between 1 and %d", maxSuggestions))
	}

	s, err := newSuggester(p.FlagOrDefault("lexicon", cfg.Suggest.LexiconPath))
	if err != nil {
		return err
	}
	words := s.Suggest(text, limit)

	if args.JSON {
		return printJSON("suggest", SuggestData{Text: text, Suggestions: words})
	}
	if len(words) == 0 {
		if !args.Quiet {
			fmt.Fprintln(stderr, DimStyle.Render("No suggestions."))
		}
		return nil
	}
	for _, w := range words {
		fmt.Fprintln(stdout, w)
	}
	return nil
}
