// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// calc_cmd.go - Interactive calculator for typebuddy.
//
// USABILITY: Line editing and persistent input history via liner
//
// Command: calc
// Short:   Interactive calculator REPL
// Aliases: repl
//
// REPL Commands:
//   <expression>        Evaluate and print the result
//   :canon              Toggle showing the canonical expression
//   :graph <expr>       Plot an expression of x
//   :history [N]        Show recent calculations
//   :help               Show REPL commands
//   :quit, :q           Exit (Ctrl+D also works)
//
// Examples:
//   typebuddy calc
//   calc> 2+3×4
//   14
//   calc> :graph sin(x)
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/ui/plot"
)

const calcPrompt = "calc> "

// =============================================================================
// LINE EDITING
// =============================================================================

// CalcCLI provides input history and line editing for the calculator.
type CalcCLI struct {
	line        *liner.State
	historyFile string
}

// NewCalcCLI creates a CalcCLI with history loaded from the config directory.
func NewCalcCLI() *CalcCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeFunction)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	c := &CalcCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "calc_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput reads one line, adding it to the input history.
func (c *CalcCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (c *CalcCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// completeFunction completes the function name being typed at the end of line.
func completeFunction(line string) []string {
	start := len(line)
	for start > 0 {
		c := line[start-1]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			break
		}
		start--
	}
	word := strings.ToLower(line[start:])
	if word == "" {
		return nil
	}
	var out []string
	for _, name := range calc.Functions() {
		if strings.HasPrefix(name, word) {
			out = append(out, line[:start]+name+"(")
		}
	}
	return out
}

// =============================================================================
// SESSION
// =============================================================================

// calcSession is the REPL state independent of the terminal.
type calcSession struct {
	cfg       *config.Config
	store     *storage.Store // nil when history is off or unavailable
	canonical bool
	count     int
}

// evalLine runs one line of input, writing output to w. It reports
// whether the session should end.
func (s *calcSession) evalLine(line string, w io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ":") {
		cmd, rest, _ := strings.Cut(line[1:], " ")
		rest = strings.TrimSpace(rest)
		switch strings.ToLower(cmd) {
		case "q", "quit", "exit":
			return true
		case "canon":
			s.canonical = !s.canonical
			state := "off"
			if s.canonical {
				state = "on"
			}
			fmt.Fprintf(w, "%s canonical display %s\n", DimStyle.Render("·"), state)
		case "graph":
			s.graph(rest, w)
		case "history", "hist":
			s.history(rest, w)
		case "help", "h", "?":
			s.help(w)
		default:
			fmt.Fprintf(w, "%s unknown command :%s (try :help)\n", ErrorStyle.Render("✗"), cmd)
		}
		return false
	}

	if len(line) > maxExpressionLength {
		fmt.Fprintf(w, "%s expression longer than %d bytes\n", ErrorStyle.Render("✗"), maxExpressionLength)
		return false
	}

	canonical, value, err := evaluate(line)
	result := calc.ErrorResult
	if err == nil {
		result = calc.FormatResult(value)
	}
	s.count++
	s.record(line, canonical, result, storage.ModeEval)

	switch {
	case err != nil:
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render(result), DimStyle.Render(describeCalcError(err)))
	case s.canonical:
		fmt.Fprintf(w, "%s = %s\n", highlight(canonical), ResultStyle.Render(result))
	default:
		fmt.Fprintln(w, ResultStyle.Render(result))
	}
	return false
}

func (s *calcSession) graph(expr string, w io.Writer) {
	if expr == "" {
		fmt.Fprintf(w, "%s usage: :graph <expression>\n", ErrorStyle.Render("✗"))
		return
	}
	c := s.cfg.Calculator
	prog, err := calc.Compile(expr, c.Variable)
	if err != nil {
		fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render(calc.ErrorResult), DimStyle.Render(describeCalcError(err)))
		return
	}
	points := prog.Sample(c.XMin, c.XMax, c.GraphPoints)
	s.record(expr, prog.Canonical(), fmt.Sprintf("%d points", len(points)), storage.ModeGraph)
	if len(points) == 0 {
		fmt.Fprintln(w, WarningStyle.Render("No finite points in range."))
		return
	}
	width, _ := GetTerminalSize()
	fmt.Fprintln(w, plot.Render(points, plot.Options{
		Width:  width - 12,
		Height: plot.DefaultHeight,
		XMin:   c.XMin,
		XMax:   c.XMax,
	}))
}

func (s *calcSession) history(arg string, w io.Writer) {
	if s.store == nil {
		fmt.Fprintln(w, DimStyle.Render("History is off."))
		return
	}
	limit := 10
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			fmt.Fprintf(w, "%s :history takes a positive count\n", ErrorStyle.Render("✗"))
			return
		}
		limit = n
	}
	ctx, cancel := commandContext()
	defer cancel()
	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("✗"), err)
		return
	}
	writeEntries(w, entries, time.Now())
}

func (s *calcSession) help(w io.Writer) {
	fmt.Fprintln(w, SectionStyle.Render("Commands"))
	for _, row := range [][2]string{
		{":canon", "Toggle the canonical expression"},
		{":graph <expr>", "Plot an expression of " + s.cfg.Calculator.Variable},
		{":history [N]", "Show recent calculations"},
		{":quit", "Exit (Ctrl+D)"},
	} {
		fmt.Fprintln(w, RenderField("  "+row[0], row[1]))
	}
	fmt.Fprintln(w, DimStyle.Render("Tab completes function names."))
}

func (s *calcSession) record(expr, canonical, result, mode string) {
	if s.store == nil {
		return
	}
	ctx, cancel := commandContext()
	defer cancel()
	if _, err := s.store.Record(ctx, storage.Entry{
		Expression: expr, Canonical: canonical, Result: result, Mode: mode,
	}); err != nil {
		fmt.Fprintf(stderr, "%s history not saved: %v\n", WarningStyle.Render("Warning:"), err)
	}
}

// describeCalcError turns a calc error into a short hint.
func describeCalcError(err error) string {
	switch {
	case errors.Is(err, calc.ErrUnknownIdent):
		return "unknown name"
	case errors.Is(err, calc.ErrDomain):
		return "not a finite number"
	case errors.Is(err, calc.ErrSyntax):
		return "syntax error"
	default:
		return err.Error()
	}
}

// HandleCalc handles the "calc" command.
func HandleCalc(args Args) error {
	if args.JSON {
		return NewValidationErrorWithExample("json", "", "the calculator is interactive", `typebuddy eval "2+2" --json`)
	}
	if err := RequiresTTY("the interactive calculator"); err != nil {
		return err
	}

	cfg := loadConfig()
	session := &calcSession{cfg: cfg}
	if cfg.History.Enabled {
		store, err := openStorage(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "%s history unavailable: %v\n", WarningStyle.Render("Warning:"), err)
		} else {
			session.store = store
			defer store.Close()
		}
	}

	if !args.Quiet {
		fmt.Fprintln(stdout, TitleStyle.Render("typebuddy calculator"))
		fmt.Fprintln(stdout, DimStyle.Render("Type an expression, :help for commands, Ctrl+D to exit."))
	}

	input := NewCalcCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(calcPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if session.evalLine(line, stdout) {
			break
		}
	}

	if args.Verbose {
		fmt.Fprintln(stdout, DimStyle.Render(fmt.Sprintf("%d calculations", session.count)))
	}
	return nil
}
