// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/typebuddy/internal/calc"
)

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// USABILITY: Canonical expressions are colored the same way in the REPL
// and in eval --canonical output.

var (
	exprLexer     chroma.Lexer
	exprLexerOnce sync.Once
)

// expressionLexer returns a lexer for canonical calculator text. Function
// names are matched longest first so "sinh" never lexes as "sin" "h".
func expressionLexer() chroma.Lexer {
	exprLexerOnce.Do(func() {
		names := calc.Functions()
		sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		builtins := `\b(` + strings.Join(quoted, "|") + `)\b`

		exprLexer = chroma.Coalesce(chroma.MustNewLexer(
			&chroma.Config{Name: "typebuddy", Aliases: []string{"calc"}},
			func() chroma.Rules {
				return chroma.Rules{
					"root": {
						{Pattern: `\s+`, Type: chroma.Whitespace},
						{Pattern: builtins, Type: chroma.NameBuiltin},
						{Pattern: `(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`, Type: chroma.LiteralNumber},
						{Pattern: `[a-zA-Z]`, Type: chroma.NameVariable},
						{Pattern: `\*\*|[-+*/%!]`, Type: chroma.Operator},
						{Pattern: `[(),]`, Type: chroma.Punctuation},
						{Pattern: `.`, Type: chroma.Error},
					},
				}
			},
		))
	})
	return exprLexer
}

// highlight colors canonical expression text for the terminal. Text is
// returned unchanged when colors are off or highlighting fails.
func highlight(canonical string) string {
	if !ColorsEnabled() {
		return canonical
	}

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := expressionLexer().Tokenise(nil, canonical)
	if err != nil {
		return canonical
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return canonical
	}
	return buf.String()
}
