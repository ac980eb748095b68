// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
)

func TestMain(m *testing.M) {
	ForceColorsEnabled(false)
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// =============================================================================
// HELPERS
// =============================================================================

// setupCLI points the data directory at a temp dir and captures output.
func setupCLI(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TYPEBUDDY_HOME", dir)

	config.ResetGlobalForTesting()
	cfg := config.Default()
	cfg.SetDefaults()
	config.SetGlobal(cfg)

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = oldOut, oldErr
		config.ResetGlobalForTesting()
	})
	return out, errOut
}

// run parses argv and dispatches the command like main does.
func run(t *testing.T, argv ...string) error {
	t.Helper()
	cmd, args := ParseArgs(argv)
	switch cmd {
	case CmdEval:
		return HandleEval(args)
	case CmdGraph:
		return HandleGraph(args)
	case CmdSuggest:
		return HandleSuggest(args)
	case CmdKeys:
		return HandleKeys(args)
	case CmdPrefs:
		return HandlePrefs(args)
	case CmdHistory:
		return HandleHistory(args)
	case CmdNotes:
		return HandleNotes(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdVersion:
		return HandleVersion(args)
	case CmdUnknown:
		return HandleUnknown(args)
	}
	t.Fatalf("command %v is not runnable in tests", cmd)
	return nil
}

// jsonData decodes a JSONResponse and its data from out, then resets out.
func jsonData(t *testing.T, out *bytes.Buffer, data interface{}) JSONResponse {
	t.Helper()
	var resp struct {
		JSONResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", resp.Data, err)
		}
	}
	out.Reset()
	return resp.JSONResponse
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		want    Command
		check   func(*testing.T, Args)
	}{
		{name: "no args starts the pad", argv: nil, want: CmdPad},
		{name: "eval", argv: []string{"eval", "2+2"}, want: CmdEval, check: func(t *testing.T, a Args) {
			if !reflect.DeepEqual(a.Raw, []string{"2+2"}) {
				t.Errorf("Raw = %q", a.Raw)
			}
		}},
		{name: "bare expression", argv: []string{"Sin(0)+1"}, want: CmdEval, check: func(t *testing.T, a Args) {
			if !reflect.DeepEqual(a.Raw, []string{"Sin(0)+1"}) {
				t.Errorf("Raw = %q, want original spelling", a.Raw)
			}
		}},
		{name: "leading minus after --", argv: []string{"--", "-2^2"}, want: CmdEval},
		{name: "global flags anywhere", argv: []string{"history", "--json", "-q"}, want: CmdHistory, check: func(t *testing.T, a Args) {
			if !a.JSON || !a.Quiet {
				t.Errorf("JSON=%v Quiet=%v, want both", a.JSON, a.Quiet)
			}
		}},
		{name: "-v is verbose", argv: []string{"-v", "keys"}, want: CmdKeys, check: func(t *testing.T, a Args) {
			if !a.Verbose {
				t.Error("Verbose = false")
			}
		}},
		{name: "alias", argv: []string{"plot", "x"}, want: CmdGraph},
		{name: "config set", argv: []string{"config", "set", "server.port", "9000"}, want: CmdConfig, check: func(t *testing.T, a Args) {
			if a.Subcommand != "set" || a.ConfigKey != "server.port" || a.ConfigVal != "9000" {
				t.Errorf("got %q %q %q", a.Subcommand, a.ConfigKey, a.ConfigVal)
			}
		}},
		{name: "typo", argv: []string{"hsitory"}, want: CmdUnknown, check: func(t *testing.T, a Args) {
			if a.Unknown != "hsitory" {
				t.Errorf("Unknown = %q", a.Unknown)
			}
		}},
		{name: "broken expression is unknown", argv: []string{"2+"}, want: CmdUnknown},
		{name: "version", argv: []string{"--version"}, want: CmdVersion},
		{name: "help", argv: []string{"-h"}, want: CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := ParseArgs(tt.argv)
			if got != tt.want {
				t.Fatalf("ParseArgs(%q) = %v, want %v", tt.argv, got, tt.want)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"x^2", "--from", "-3", "--to=3", "--json", "--", "--not-a-flag"})

	if p.Subcommand() != "x^2" {
		t.Errorf("Subcommand() = %q", p.Subcommand())
	}
	if p.Flag("from") != "-3" {
		t.Errorf("Flag(from) = %q, want -3", p.Flag("from"))
	}
	if p.Flag("to") != "3" {
		t.Errorf("Flag(to) = %q, want 3", p.Flag("to"))
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if got := p.PositionalFrom(1); !reflect.DeepEqual(got, []string{"--not-a-flag"}) {
		t.Errorf("PositionalFrom(1) = %q", got)
	}
}

func TestArgParser_NumericFlags(t *testing.T) {
	p := NewArgParser([]string{"--points", "abc", "--from", "-2.5"})

	if _, err := p.FlagIntOrDefault("points", 100); err == nil {
		t.Error("FlagIntOrDefault(points=abc) error = nil")
	} else if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
	if v, err := p.FlagIntOrDefault("missing", 7); err != nil || v != 7 {
		t.Errorf("FlagIntOrDefault(missing) = %d, %v", v, err)
	}
	if v, err := p.FlagFloatOrDefault("from", 0); err != nil || v != -2.5 {
		t.Errorf("FlagFloatOrDefault(from) = %g, %v", v, err)
	}
}

func TestSuggestCommand(t *testing.T) {
	tests := map[string]string{
		"hsitory": "history",
		"evl":     "eval",
		"grpah":   "graph",
		"plto":    "graph",
		"confg":   "config",
		"help":    "",
		"xyzzy":   "",
		"x":       "",
	}
	for input, want := range tests {
		if got := SuggestCommand(input); got != want {
			t.Errorf("SuggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestHandleUnknown(t *testing.T) {
	_, errOut := setupCLI(t)

	err := run(t, "hsitory")
	if GetExitCode(err) != ExitNotFoundError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitNotFoundError)
	}
	if !strings.Contains(errOut.String(), "typebuddy history") {
		t.Errorf("stderr = %q, want a suggestion", errOut.String())
	}
}

// =============================================================================
// EVAL AND GRAPH
// =============================================================================

func TestHandleEval(t *testing.T) {
	out, _ := setupCLI(t)

	tests := []struct {
		argv []string
		want string
	}{
		{[]string{"eval", "2+3×4"}, "14\n"},
		{[]string{"eval", "2", "+", "2"}, "4\n"},
		{[]string{"5!"}, "120\n"},
		{[]string{"eval", "--", "-2^2"}, "4\n"},
		{[]string{"eval", "√(16)", "--canonical"}, "sqrt(16) = 4\n"},
	}
	for _, tt := range tests {
		out.Reset()
		if err := run(t, tt.argv...); err != nil {
			t.Errorf("%q: error = %v", tt.argv, err)
			continue
		}
		if out.String() != tt.want {
			t.Errorf("%q: output = %q, want %q", tt.argv, out.String(), tt.want)
		}
	}
}

func TestHandleEval_Error(t *testing.T) {
	out, _ := setupCLI(t)

	err := run(t, "eval", "1/0")
	if err == nil {
		t.Fatal("eval 1/0 error = nil")
	}
	if GetExitCode(err) != ExitCalcError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitCalcError)
	}
	if strings.TrimSpace(out.String()) != calc.ErrorResult {
		t.Errorf("output = %q, want %q", out.String(), calc.ErrorResult)
	}

	out.Reset()
	err = run(t, "eval", "sin(", "--json")
	if !IsReported(err) {
		t.Errorf("JSON eval error not marked reported: %v", err)
	}
	var data EvalData
	resp := jsonData(t, out, &data)
	if resp.Success || resp.Error == nil {
		t.Errorf("Success = %v, Error = %v", resp.Success, resp.Error)
	}
	if data.Result != calc.ErrorResult || data.Value != nil {
		t.Errorf("data = %+v", data)
	}
}

func TestHandleEval_JSON(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "eval", "2×π", "--json"); err != nil {
		t.Fatalf("error = %v", err)
	}
	var data EvalData
	resp := jsonData(t, out, &data)
	if !resp.Success || resp.Command != "eval" {
		t.Errorf("resp = %+v", resp)
	}
	if data.Result != "6.283185307" || data.Value == nil {
		t.Errorf("data = %+v", data)
	}
}

func TestHandleEval_MissingExpression(t *testing.T) {
	setupCLI(t)
	err := run(t, "eval")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestHandleGraph_JSON(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "graph", "x^2", "--from", "-2", "--to", "2", "--points", "4", "--json"); err != nil {
		t.Fatalf("error = %v", err)
	}
	var data GraphData
	jsonData(t, out, &data)

	if data.Canonical != "x**2" || data.Variable != "x" || data.Count != 5 {
		t.Errorf("data = %+v", data)
	}
	wantY := []float64{4, 1, 0, 1, 4}
	for i, p := range data.Points {
		if p.Y != wantY[i] {
			t.Errorf("Points[%d].Y = %g, want %g", i, p.Y, wantY[i])
		}
	}
}

func TestHandleGraph_Plot(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "graph", "t", "--var", "t", "--width", "20", "--height", "5", "-q"); err != nil {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(out.String(), "*") {
		t.Errorf("plot has no points:\n%s", out.String())
	}
}

func TestHandleGraph_Errors(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		argv []string
		code int
	}{
		{[]string{"graph", "x", "--points", "0"}, ExitUsageError},
		{[]string{"graph", "x", "--points", "10001"}, ExitUsageError},
		{[]string{"graph", "x", "--var", "xy"}, ExitUsageError},
		{[]string{"graph", "x", "--from", "3", "--to", "1"}, ExitUsageError},
		{[]string{"graph", "x+"}, ExitCalcError},
		{[]string{"graph", "y", "--var", "x"}, ExitCalcError},
	}
	for _, tt := range tests {
		err := run(t, tt.argv...)
		if got := GetExitCode(err); got != tt.code {
			t.Errorf("%q: exit code = %d (%v), want %d", tt.argv, got, err, tt.code)
		}
	}
}

// =============================================================================
// HISTORY AND NOTES
// =============================================================================

func TestHistory_RecordsEvaluations(t *testing.T) {
	out, _ := setupCLI(t)

	run(t, "eval", "1+1")
	run(t, "eval", "2+2", "--no-history")
	run(t, "graph", "x", "--json")
	out.Reset()

	if err := run(t, "history", "--json"); err != nil {
		t.Fatalf("history error = %v", err)
	}
	var data HistoryData
	jsonData(t, out, &data)
	if data.Count != 2 {
		t.Fatalf("Count = %d, want 2: %+v", data.Count, data.Entries)
	}
	if data.Entries[0].Mode != "graph" || data.Entries[1].Result != "2" {
		t.Errorf("entries = %+v", data.Entries)
	}

	if err := run(t, "history", "clear", "--json"); GetExitCode(err) != ExitUsageError {
		t.Errorf("clear without --confirm in JSON mode: %v", err)
	}
	out.Reset()

	if err := run(t, "history", "clear", "--confirm", "--json"); err != nil {
		t.Fatalf("clear error = %v", err)
	}
	jsonData(t, out, &data)
	if data.Removed != 2 {
		t.Errorf("Removed = %d, want 2", data.Removed)
	}
}

func TestHistory_DisabledByConfig(t *testing.T) {
	out, _ := setupCLI(t)
	config.Global().History.Enabled = false

	run(t, "eval", "1+1")
	out.Reset()

	if err := run(t, "history", "--json"); err != nil {
		t.Fatalf("history error = %v", err)
	}
	var data HistoryData
	jsonData(t, out, &data)
	if data.Count != 0 || data.Entries == nil {
		t.Errorf("data = %+v, want empty non-nil entries", data)
	}
}

func TestHistory_BadLimit(t *testing.T) {
	setupCLI(t)
	if err := run(t, "history", "--limit", "0"); GetExitCode(err) != ExitUsageError {
		t.Errorf("--limit 0: %v", err)
	}
}

func TestNotes(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "notes", "add", "i", "like", "to", "play", "--json"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	var note struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	jsonData(t, out, &note)
	if note.Body != "i like to play" || note.Title != "i like to play" {
		t.Errorf("note = %+v", note)
	}

	if err := run(t, "notes", "add", "milk", "--title", "Shopping", "-q"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	out.Reset()

	if err := run(t, "notes", "--json"); err != nil {
		t.Fatalf("list error = %v", err)
	}
	var list NotesData
	jsonData(t, out, &list)
	if list.Count != 2 {
		t.Fatalf("Count = %d, want 2", list.Count)
	}

	if err := run(t, "notes", "show", note.ID[:8], "-q"); err != nil {
		t.Fatalf("show error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "i like to play" {
		t.Errorf("show output = %q", out.String())
	}
	out.Reset()

	if err := run(t, "notes", "delete", note.ID, "--confirm", "-q"); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	if err := run(t, "notes", "show", note.ID); GetExitCode(err) != ExitNotFoundError {
		t.Errorf("show deleted note: %v", err)
	}
}

func TestNotes_Errors(t *testing.T) {
	setupCLI(t)

	if err := run(t, "notes", "add", "   "); GetExitCode(err) != ExitUsageError {
		t.Errorf("add blank: %v", err)
	}
	if err := run(t, "notes", "show"); GetExitCode(err) != ExitUsageError {
		t.Errorf("show without id: %v", err)
	}
	if err := run(t, "notes", "frobnicate"); GetExitCode(err) != ExitUsageError {
		t.Errorf("unknown subcommand: %v", err)
	}
}

// =============================================================================
// SUGGEST AND KEYS
// =============================================================================

func TestHandleSuggest(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "suggest", "c"); err != nil {
		t.Fatalf("error = %v", err)
	}
	if got := out.String(); got != "Can\nCar\nCat\nCake\nCity\n" {
		t.Errorf("output = %q", got)
	}
	out.Reset()

	if err := run(t, "suggest", "the ", "--max", "2", "--json"); err != nil {
		t.Fatalf("error = %v", err)
	}
	var data SuggestData
	jsonData(t, out, &data)
	if !reflect.DeepEqual(data.Suggestions, []string{"cat", "dog"}) {
		t.Errorf("Suggestions = %q", data.Suggestions)
	}

	if err := run(t, "suggest", "a", "--max", "0"); GetExitCode(err) != ExitUsageError {
		t.Errorf("--max 0: %v", err)
	}
	if err := run(t, "suggest", "a", "--lexicon", "/nonexistent.yaml"); err == nil {
		t.Error("missing lexicon error = nil")
	}
}

func TestHandlePad_NotInteractive(t *testing.T) {
	setupCLI(t)

	if err := HandlePad(Args{JSON: true}); GetExitCode(err) != ExitUsageError {
		t.Errorf("--json: %v", err)
	}
	// Test binaries run without a terminal on stdin.
	if IsTTY() {
		t.Skip("stdin is a terminal")
	}
	var ttyErr *TTYRequiredError
	if err := HandlePad(Args{}); !errors.As(err, &ttyErr) {
		t.Errorf("error = %v, want TTYRequiredError", err)
	}
}

func TestHandleKeys(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "keys", "--json"); err != nil {
		t.Fatalf("error = %v", err)
	}
	var data KeysData
	jsonData(t, out, &data)
	if !reflect.DeepEqual(data.Basic, calc.Buttons) {
		t.Errorf("Basic = %v", data.Basic)
	}

	md := keysMarkdown()
	for _, want := range []string{"## Scientific", "| `7` |", "`sqrt`", "`factorial(n)`"} {
		if !strings.Contains(md, want) {
			t.Errorf("keys markdown missing %q", want)
		}
	}
	if err := run(t, "keys"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out.String(), "Notation") {
		t.Errorf("rendered keys missing Notation heading:\n%s", out.String())
	}
}

// =============================================================================
// PREFERENCES AND CONFIG
// =============================================================================

func TestPrefs_SetAndShow(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "prefs", "set", "keyboardLayout", "qwerty", "-q"); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := run(t, "prefs", "set", "displayName", "Sam", "the", "Writer", "-q"); err != nil {
		t.Fatalf("set error = %v", err)
	}
	if err := run(t, "prefs", "set", "keyboardLayout", "dvorak"); GetExitCode(err) != ExitUsageError {
		t.Errorf("invalid layout: %v", err)
	}
	if err := run(t, "prefs", "set", "keyboardLayout"); GetExitCode(err) != ExitUsageError {
		t.Errorf("missing value: %v", err)
	}

	out.Reset()
	if err := run(t, "prefs", "--json"); err != nil {
		t.Fatalf("show error = %v", err)
	}
	var data struct {
		Locked      bool                   `json:"locked"`
		Preferences map[string]interface{} `json:"preferences"`
	}
	jsonData(t, out, &data)
	if data.Preferences["keyboardLayout"] != "qwerty" || data.Preferences["displayName"] != "Sam the Writer" {
		t.Errorf("preferences = %v", data.Preferences)
	}
	if _, ok := data.Preferences["caregiverLock"]; ok {
		t.Error("caregiverLock exposed")
	}
}

func TestPrefs_CaregiverLock(t *testing.T) {
	setupCLI(t)

	if err := run(t, "prefs", "lock", "--new-pin", "12"); GetExitCode(err) != ExitUsageError {
		t.Errorf("short PIN: %v", err)
	}
	if err := run(t, "prefs", "lock", "--new-pin", "2468", "-q"); err != nil {
		t.Fatalf("lock error = %v", err)
	}
	if err := run(t, "prefs", "set", "keySpacing", "wide", "--json"); GetExitCode(err) != ExitLockedError {
		t.Errorf("set without PIN: %v", err)
	}
	if err := run(t, "prefs", "set", "keySpacing", "wide", "--pin", "1357"); GetExitCode(err) != ExitLockedError {
		t.Errorf("set with wrong PIN: %v", err)
	}
	if err := run(t, "prefs", "set", "keySpacing", "wide", "--pin", "2468", "-q"); err != nil {
		t.Errorf("set with PIN: %v", err)
	}
	if err := run(t, "prefs", "unlock", "--pin", "2468", "-q"); err != nil {
		t.Errorf("unlock error = %v", err)
	}
	if err := run(t, "prefs", "set", "keySpacing", "tight", "-q"); err != nil {
		t.Errorf("set after unlock: %v", err)
	}
}

func TestPrefs_ResetLayout(t *testing.T) {
	setupCLI(t)

	if err := run(t, "prefs", "reset-layout", "abc", "-q"); err != nil {
		t.Errorf("reset-layout abc: %v", err)
	}
	if err := run(t, "prefs", "reset-layout", "dvorak"); GetExitCode(err) != ExitUsageError {
		t.Errorf("reset-layout dvorak: %v", err)
	}
}

func TestConfig_SetAndGet(t *testing.T) {
	out, _ := setupCLI(t)

	if err := run(t, "config", "set", "calculator.x_max", "20", "-q"); err != nil {
		t.Fatalf("set error = %v", err)
	}
	out.Reset()
	if err := run(t, "config", "get", "calculator.x_max"); err != nil {
		t.Fatalf("get error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "20" {
		t.Errorf("get output = %q, want 20", out.String())
	}

	path, _ := config.ConfigPathTOML()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	if err := run(t, "config", "set", "server.port", "abc"); GetExitCode(err) != ExitUsageError {
		t.Errorf("non-integer port: %v", err)
	}
	if err := run(t, "config", "set", "server.port", "70000"); GetExitCode(err) != ExitConfigError {
		t.Errorf("out of range port: %v", err)
	}
	if err := run(t, "config", "set", "nope.key", "1"); GetExitCode(err) != ExitUsageError {
		t.Errorf("unknown key: %v", err)
	}
}

func TestHandleVersion_JSON(t *testing.T) {
	out, _ := setupCLI(t)
	if err := run(t, "version", "--json"); err != nil {
		t.Fatalf("error = %v", err)
	}
	var data VersionData
	jsonData(t, out, &data)
	if data.Version != Version {
		t.Errorf("Version = %q, want %q", data.Version, Version)
	}
}

// =============================================================================
// CALC REPL
// =============================================================================

func TestCalcSession(t *testing.T) {
	s := &calcSession{cfg: config.Default()}
	var w bytes.Buffer

	lines := []struct {
		in   string
		want string
	}{
		{"2+2", "4\n"},
		{"   ", ""},
		{":canon", "canonical display on"},
		{"√(16)", "sqrt(16) = 4\n"},
		{"foo(", "Error"},
		{":history", "History is off."},
		{":graph x^2", "*"},
		{":graph", "usage"},
		{":nope", "unknown command"},
	}
	for _, l := range lines {
		w.Reset()
		if s.evalLine(l.in, &w) {
			t.Fatalf("%q ended the session", l.in)
		}
		if !strings.Contains(w.String(), l.want) {
			t.Errorf("%q: output = %q, want %q", l.in, w.String(), l.want)
		}
	}
	if s.count != 3 {
		t.Errorf("count = %d, want 3", s.count)
	}
	if !s.evalLine(":q", &w) {
		t.Error(":q did not end the session")
	}
}

func TestCompleteFunction(t *testing.T) {
	got := completeFunction("2+si")
	want := []string{"2+sin(", "2+sinh("}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("completeFunction = %q, want %q", got, want)
	}
	if completeFunction("2+") != nil {
		t.Error("completion without a word should be nil")
	}
}

func TestExpressionLexer(t *testing.T) {
	it, err := expressionLexer().Tokenise(nil, "sinh(x)**2")
	if err != nil {
		t.Fatalf("Tokenise() error = %v", err)
	}
	want := []chroma.Token{
		{Type: chroma.NameBuiltin, Value: "sinh"},
		{Type: chroma.Punctuation, Value: "("},
		{Type: chroma.NameVariable, Value: "x"},
		{Type: chroma.Punctuation, Value: ")"},
		{Type: chroma.Operator, Value: "**"},
		{Type: chroma.LiteralNumber, Value: "2"},
	}
	got := it.Tokens()
	if len(got) < len(want) {
		t.Fatalf("tokens = %v", got)
	}
	for i, tok := range want {
		if got[i].Type != tok.Type || got[i].Value != tok.Value {
			t.Errorf("token %d = %v %q, want %v %q", i, got[i].Type, got[i].Value, tok.Type, tok.Value)
		}
	}
	if highlight("1+2") != "1+2" {
		t.Error("highlight should be plain text with colors off")
	}
}
