// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keys_cmd.go - Keypad and notation reference for typebuddy.
//
// USABILITY: Markdown rendering via glamour, plain text when piped
//
// Command: keys
// Short:   Show the calculator keypads and accepted notation
// Aliases: keypad
//
// Examples:
//   typebuddy keys
//   typebuddy keys --json
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/typebuddy/internal/calc"
)

// notation lists the display symbols the calculator understands and what
// they become in canonical text.
var notation = [][3]string{
	{"×", "*", "multiply"},
	{"÷", "/", "divide"},
	{"^", "**", "power"},
	{"√(x)", "sqrt(x)", "square root"},
	{"∛(x)", "cbrt(x)", "cube root"},
	{"π", "3.141592653589793", "pi"},
	{"e", "2.718281828459045", "Euler's number"},
	{"n!", "factorial(n)", "factorial (integers up to 170)"},
	{"a mod b", "a % b", "remainder"},
	{"log(x)", "log10(x)", "base-10 logarithm"},
}

// keysMarkdown builds the reference page.
func keysMarkdown() string {
	var b strings.Builder
	b.WriteString("# Calculator keys\n\n")
	writeKeypad(&b, "Basic", calc.Buttons)
	writeKeypad(&b, "Scientific", calc.ScientificButtons)
	writeKeypad(&b, "Advanced", calc.AdvancedButtons)

	b.WriteString("## Notation\n\n| Type | Means | |\n|---|---|---|\n")
	for _, row := range notation {
		fmt.Fprintf(&b, "| `%s` | `%s` | %s |\n", row[0], row[1], row[2])
	}

	b.WriteString("\n## Functions\n\n")
	names := calc.Functions()
	for i, name := range names {
		names[i] = "`" + name + "`"
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")
	return b.String()
}

func writeKeypad(b *strings.Builder, title string, rows [][]string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	for i, row := range rows {
		b.WriteString("|")
		for _, label := range row {
			fmt.Fprintf(b, " `%s` |", label)
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(strings.Repeat("|---", len(row)) + "|\n")
		}
	}
	b.WriteString("\n")
}

// renderMarkdown renders md for the terminal, falling back to the raw
// text if glamour fails.
func renderMarkdown(md string) string {
	style := glamour.WithAutoStyle()
	if !ColorsEnabled() {
		style = glamour.WithStandardStyle("notty")
	}
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// HandleKeys handles the "keys" command.
func HandleKeys(args Args) error {
	if args.JSON {
		return printJSON("keys", KeysData{
			Basic:      calc.Buttons,
			Scientific: calc.ScientificButtons,
			Advanced:   calc.AdvancedButtons,
			Functions:  calc.Functions(),
		})
	}
	fmt.Fprint(stdout, renderMarkdown(keysMarkdown()))
	return nil
}
