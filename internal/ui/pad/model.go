// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pad

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
	"github.com/jeranaias/typebuddy/internal/prefs"
	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/suggest"
	"github.com/jeranaias/typebuddy/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Mode is the active half of the pad.
type Mode int

const (
	ModeTyping Mode = iota // Word-suggesting text area
	ModeCalc               // Calculator with live preview and graph
)

// String returns the tab label for the mode.
func (m Mode) String() string {
	if m == ModeCalc {
		return "Calculator"
	}
	return "Typing"
}

const (
	// maxBar is the number of suggestion slots reachable with alt+digit.
	maxBar = 5

	// graphDebounce delays resampling until typing pauses.
	graphDebounce = 150 * time.Millisecond

	// storeTimeout bounds history and note writes.
	storeTimeout = 5 * time.Second

	maxExpressionLength = 4096
)

var errNoStorage = errors.New("no storage")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// =============================================================================
// MESSAGES
// =============================================================================

// graphTickMsg fires after graphDebounce; stale ticks carry an old seq.
type graphTickMsg struct{ seq int }

// historyRecordedMsg reports the outcome of a history write.
type historyRecordedMsg struct{ err error }

// noteSavedMsg reports the outcome of saving the typed text.
type noteSavedMsg struct {
	note storage.Note
	err  error
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}

// =============================================================================
// MODEL
// =============================================================================

// Options wires the pad to the rest of typebuddy. Store and Prefs may be
// nil; Config defaults apply when Config is nil.
type Options struct {
	Config    *config.Config
	Store     *storage.Store
	Suggester *suggest.Suggester
	Prefs     *prefs.Preferences
	Theme     *styles.Theme
}

// Model is the Bubble Tea model for the pad.
type Model struct {
	mode Mode

	// Styling
	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	// Dimensions
	width  int
	height int

	cfg         *config.Config
	store       *storage.Store
	displayName string

	// Typing mode: finished lines above the input line.
	lines       []string
	typing      textinput.Model
	buffer      *suggest.Buffer
	suggestions []string

	// Calculator mode
	expr      textinput.Model
	keypad    calc.Keypad
	preview   string
	canonical string
	graph     []calc.Point
	graphSeq  int

	flash string
}

// New creates a pad in typing mode.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	var displayName, buttonColor, buttonText string
	if opts.Prefs != nil {
		displayName = opts.Prefs.DisplayName
		buttonColor = opts.Prefs.ButtonColor()
		buttonText = opts.Prefs.ButtonTextColor()
	}

	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme, buttonColor, buttonText)
	}

	typing := textinput.New()
	typing.Prompt = ""
	typing.Placeholder = "Start typing..."
	typing.Focus()

	expr := textinput.New()
	expr.Prompt = "> "
	expr.Placeholder = "2 + 2, sin(x), 5!"
	expr.CharLimit = maxExpressionLength

	h := help.New()
	h.Styles.ShortKey = theme.Help.Bold(true)
	h.Styles.ShortDesc = theme.Help
	h.Styles.FullKey = theme.Help.Bold(true)
	h.Styles.FullDesc = theme.Help

	m := Model{
		mode:        ModeTyping,
		theme:       theme,
		keys:        DefaultKeyMap(),
		help:        h,
		cfg:         cfg,
		store:       opts.Store,
		displayName: displayName,
		typing:      typing,
		buffer:      suggest.NewBuffer(opts.Suggester),
		expr:        expr,
	}
	m.refreshSuggestions()
	return m
}

// Run starts the pad full screen and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the active mode.
func (m Model) Mode() Mode { return m.mode }

// Text returns everything typed in typing mode.
func (m Model) Text() string {
	if len(m.lines) == 0 {
		return m.typing.Value()
	}
	return strings.Join(m.lines, "\n") + "\n" + m.typing.Value()
}

// Expression returns the calculator input.
func (m Model) Expression() string { return m.expr.Value() }

// Suggestions returns the words on the suggestion bar.
func (m Model) Suggestions() []string { return m.suggestions }

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case graphTickMsg:
		if msg.seq == m.graphSeq {
			m.sampleGraph()
		}
		return m, nil

	case historyRecordedMsg:
		if msg.err != nil {
			m.flash = "History not saved: " + msg.err.Error()
		}
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.flash = "Note not saved: " + msg.err.Error()
		} else {
			m.flash = fmt.Sprintf("Saved note %q", msg.note.Title)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.flash = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.flash = "Copied " + msg.text
		}
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		if m.mode == ModeTyping {
			return m.switchMode(ModeCalc)
		}
		return m.switchMode(ModeTyping)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.mode == ModeTyping {
			m.lines = nil
			m.typing.Reset()
			m.refreshSuggestions()
			return m, nil
		}
		m.expr.Reset()
		var cmd tea.Cmd
		m, cmd = m.expressionChanged()
		return m, cmd

	case key.Matches(msg, m.keys.Accept):
		m.accept(suggestionIndex(msg.String()))
		return m, nil

	case key.Matches(msg, m.keys.NewLine):
		m.lines = append(m.lines, m.typing.Value())
		m.typing.Reset()
		m.refreshSuggestions()
		return m, nil

	case key.Matches(msg, m.keys.SaveNote):
		return m, m.saveNote()

	case key.Matches(msg, m.keys.Evaluate):
		return m, m.evaluate()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyResult()

	case key.Matches(msg, m.keys.SendResult):
		return m.sendResult()
	}

	// Backspace on an empty line rejoins the previous one.
	if m.mode == ModeTyping && msg.Type == tea.KeyBackspace &&
		m.typing.Value() == "" && len(m.lines) > 0 {
		last := len(m.lines) - 1
		m.typing.SetValue(m.lines[last])
		m.typing.CursorEnd()
		m.lines = m.lines[:last]
		m.refreshSuggestions()
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards msg to the focused input and refreshes whatever
// depends on its value.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == ModeTyping {
		before := m.typing.Value()
		m.typing, cmd = m.typing.Update(msg)
		if m.typing.Value() != before {
			m.refreshSuggestions()
		}
		return m, cmd
	}

	before := m.expr.Value()
	m.expr, cmd = m.expr.Update(msg)
	if m.expr.Value() == before {
		return m, cmd
	}
	var graphCmd tea.Cmd
	m, graphCmd = m.expressionChanged()
	return m, tea.Batch(cmd, graphCmd)
}

func (m Model) switchMode(mode Mode) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.keys.setMode(mode)
	if mode == ModeCalc {
		m.typing.Blur()
		return m, m.expr.Focus()
	}
	m.expr.Blur()
	return m, m.typing.Focus()
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.help.Width = width

	inner := width - 6
	if inner < 10 {
		inner = 10
	}
	m.typing.Width = inner
	m.expr.Width = inner - len(m.expr.Prompt)
}

// =============================================================================
// TYPING MODE
// =============================================================================

func (m *Model) refreshSuggestions() {
	limit := m.cfg.Suggest.Max
	if limit <= 0 || limit > maxBar {
		limit = maxBar
	}
	m.buffer.SetText(m.Text())
	m.suggestions = m.buffer.Suggestions(limit)
}

// accept replaces the partly typed word on the input line with suggestion i.
func (m *Model) accept(i int) {
	if i < 0 || i >= len(m.suggestions) {
		return
	}
	m.buffer.SetText(m.typing.Value())
	m.buffer.Accept(m.suggestions[i])
	m.typing.SetValue(m.buffer.Text())
	m.typing.CursorEnd()
	m.refreshSuggestions()
}

func (m Model) saveNote() tea.Cmd {
	if m.store == nil {
		return flashCmd(noteSavedMsg{err: errNoStorage})
	}
	body := m.Text()
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		n, err := store.SaveNote(ctx, storage.Note{Body: body})
		return noteSavedMsg{note: n, err: err}
	}
}

// =============================================================================
// CALCULATOR MODE
// =============================================================================

// expressionChanged syncs the keypad with the input, refreshes the preview
// and schedules a graph resample.
func (m Model) expressionChanged() (Model, tea.Cmd) {
	text := m.expr.Value()
	m.keypad.SetExpression(text)
	m.preview = m.keypad.Preview()
	m.canonical = ""
	if prog, err := calc.Compile(text, m.variable()); err == nil {
		m.canonical = prog.Canonical()
	}

	m.graphSeq++
	if !m.cfg.UI.ShowGraph || !calc.MentionsVariable(text, m.variable()) {
		m.graph = nil
		return m, nil
	}
	seq := m.graphSeq
	return m, tea.Tick(graphDebounce, func(time.Time) tea.Msg {
		return graphTickMsg{seq: seq}
	})
}

func (m Model) variable() string {
	if calc.ValidVariable(m.cfg.Calculator.Variable) {
		return m.cfg.Calculator.Variable
	}
	return calc.GraphVariable
}

func (m *Model) sampleGraph() {
	c := m.cfg.Calculator
	text := m.expr.Value()
	if m.variable() == calc.GraphVariable {
		m.graph = calc.GenerateGraphPoints(text, c.XMin, c.XMax, c.GraphPoints)
		return
	}
	m.graph = calc.Sample(text, m.variable(), c.XMin, c.XMax, c.GraphPoints)
}

// evaluate commits the expression. A good result replaces the input so the
// next keystrokes continue from it.
func (m *Model) evaluate() tea.Cmd {
	text := strings.TrimSpace(m.expr.Value())
	if text == "" {
		return nil
	}
	canonical := m.canonical
	m.keypad.SetExpression(text)
	result, _ := m.keypad.Press(calc.KeyEquals)
	m.preview = result
	if result != calc.ErrorResult {
		m.expr.SetValue(m.keypad.Expression())
		m.expr.CursorEnd()
		m.canonical = m.keypad.Expression()
		m.graph = nil
		m.graphSeq++
	}
	return m.record(text, canonical, result)
}

func (m Model) record(expression, canonical, result string) tea.Cmd {
	if m.store == nil || !m.cfg.History.Enabled {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_, err := store.Record(ctx, storage.Entry{
			Expression: expression,
			Canonical:  canonical,
			Result:     result,
			Mode:       storage.ModeKeypad,
		})
		return historyRecordedMsg{err: err}
	}
}

// currentResult is the committed result, falling back to the live preview.
func (m Model) currentResult() string {
	if r := m.keypad.Result(); r != "" {
		return r
	}
	return m.preview
}

func (m Model) copyResult() tea.Cmd {
	result := m.currentResult()
	if result == "" || result == calc.ErrorResult {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{text: result, err: writeClipboard(result)}
	}
}

// sendResult appends the result to the typed text and returns to typing.
func (m Model) sendResult() (tea.Model, tea.Cmd) {
	result := m.currentResult()
	if result == "" || result == calc.ErrorResult {
		m.flash = "Nothing to send"
		return m, nil
	}
	m.buffer.SetText(m.typing.Value())
	m.buffer.AppendResult(result)
	m.typing.SetValue(m.buffer.Text())
	m.typing.CursorEnd()
	m.refreshSuggestions()
	return m.switchMode(ModeTyping)
}

func flashCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
