// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pad

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/config"
	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return New(Options{
		Config: config.Default(),
		Store:  store,
		Theme:  styles.NewTheme(styles.ModeDark, "", ""),
	})
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return pm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func alt(digit rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{digit}, Alt: true}
}

// =============================================================================
// TYPING MODE
// =============================================================================

func TestTyping_Suggestions(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, ModeTyping, m.Mode())

	m = typeText(t, m, "c")
	assert.Equal(t, []string{"Can", "Car", "Cat", "Cake", "City"}, m.Suggestions())

	m, _ = update(t, m, alt('3'))
	assert.Equal(t, "Cat ", m.Text())
}

func TestTyping_AcceptOutOfRange(t *testing.T) {
	m := newTestModel(t, nil)
	m.cfg.Suggest.Max = 2
	m = typeText(t, m, "c")
	require.Len(t, m.Suggestions(), 2)

	m, _ = update(t, m, alt('5'))
	assert.Equal(t, "c", m.Text())
}

func TestTyping_NextWordAcrossLines(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "hello")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "the ")

	assert.Equal(t, "hello\nthe ", m.Text())
	assert.Equal(t, []string{"cat", "dog"}, m.Suggestions()[:2])
}

func TestTyping_BackspaceJoinsLines(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "one")
	m, _ = press(t, m, tea.KeyEnter)
	require.Equal(t, "one\n", m.Text())

	m, _ = press(t, m, tea.KeyBackspace)
	assert.Equal(t, "one", m.Text())
}

func TestTyping_Clear(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "abc")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "def")

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Equal(t, "", m.Text())
}

func TestTyping_SaveNote(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)
	m = typeText(t, m, "shopping list")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "milk")

	m, cmd := press(t, m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.flash, "shopping list")

	notes, err := store.Notes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "shopping list\nmilk", notes[0].Body)
}

func TestTyping_SaveNoteWithoutStore(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "hi")
	m, cmd := press(t, m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.flash, "Note not saved")
}

// =============================================================================
// CALCULATOR MODE
// =============================================================================

func calcModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m := newTestModel(t, store)
	m, _ = press(t, m, tea.KeyTab)
	require.Equal(t, ModeCalc, m.Mode())
	return m
}

func TestCalc_LivePreview(t *testing.T) {
	m := calcModel(t, nil)

	m = typeText(t, m, "(3+4)×2^2")
	assert.Equal(t, "28", m.preview)
	assert.Equal(t, "(3+4)*2**2", m.canonical)

	m = typeText(t, m, "+")
	assert.Equal(t, calc.ErrorResult, m.preview)
}

func TestCalc_EvaluateRecordsHistory(t *testing.T) {
	store := openStore(t)
	m := calcModel(t, store)
	m = typeText(t, m, "5!")

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Equal(t, "120", m.Expression())
	assert.Equal(t, "120", m.preview)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Empty(t, m.flash)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "5!", entries[0].Expression)
	assert.Equal(t, "120", entries[0].Result)
	assert.Equal(t, storage.ModeKeypad, entries[0].Mode)
}

func TestCalc_EvaluateError(t *testing.T) {
	m := calcModel(t, nil)
	m = typeText(t, m, "2+")
	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, "2+", m.Expression())
	assert.Equal(t, calc.ErrorResult, m.preview)
}

func TestCalc_HistoryDisabled(t *testing.T) {
	store := openStore(t)
	m := calcModel(t, store)
	m.cfg.History.Enabled = false
	m = typeText(t, m, "1+1")
	_, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
}

func TestCalc_Copy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := calcModel(t, nil)
	m = typeText(t, m, "6*7")
	m, cmd := press(t, m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "42", copied)
	assert.Equal(t, "Copied 42", m.flash)

	writeClipboard = func(string) error { return errors.New("no display") }
	m, cmd = press(t, m, tea.KeyCtrlY)
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.flash, "Clipboard unavailable")
}

func TestCalc_SendResult(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "total is ")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "12/4")
	m, _ = press(t, m, tea.KeyEnter)

	m, _ = press(t, m, tea.KeyCtrlR)
	assert.Equal(t, ModeTyping, m.Mode())
	assert.Equal(t, "total is 3 ", m.Text())
}

func TestCalc_SendResultNothing(t *testing.T) {
	m := calcModel(t, nil)
	m, _ = press(t, m, tea.KeyCtrlR)
	assert.Equal(t, ModeCalc, m.Mode())
	assert.Equal(t, "Nothing to send", m.flash)
}

func TestCalc_GraphDebounce(t *testing.T) {
	m := calcModel(t, nil)

	m = typeText(t, m, "x^2")
	assert.Empty(t, m.graph, "graph is drawn only after the tick")

	stale := m.graphSeq - 1
	m, _ = update(t, m, graphTickMsg{seq: stale})
	assert.Empty(t, m.graph)

	m, _ = update(t, m, graphTickMsg{seq: m.graphSeq})
	require.Len(t, m.graph, calc.DefaultGraphPoints+1)
	assert.Equal(t, 100.0, m.graph[0].Y)

	prev := m.graphSeq
	m = typeText(t, m, "+")
	assert.Greater(t, m.graphSeq, prev)
	m, _ = update(t, m, graphTickMsg{seq: m.graphSeq})
	assert.Empty(t, m.graph, "an incomplete expression has nothing to plot")
}

func TestCalc_GraphDisabled(t *testing.T) {
	m := calcModel(t, nil)
	m.cfg.UI.ShowGraph = false
	m = typeText(t, m, "x")
	m, _ = update(t, m, graphTickMsg{seq: m.graphSeq})
	assert.Empty(t, m.graph)
}

func TestCalc_GraphOtherVariable(t *testing.T) {
	m := calcModel(t, nil)
	m.cfg.Calculator.Variable = "t"
	m = typeText(t, m, "2*t")
	m, _ = update(t, m, graphTickMsg{seq: m.graphSeq})
	require.NotEmpty(t, m.graph)
	assert.Equal(t, -20.0, m.graph[0].Y)
}

// =============================================================================
// GENERAL
// =============================================================================

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSuggestionIndex(t *testing.T) {
	assert.Equal(t, 0, suggestionIndex("alt+1"))
	assert.Equal(t, 4, suggestionIndex("alt+5"))
	assert.Equal(t, -1, suggestionIndex("alt+6"))
	assert.Equal(t, -1, suggestionIndex("alt+0"))
	assert.Equal(t, -1, suggestionIndex("ctrl+1"))
}

func TestKeyMap_Modes(t *testing.T) {
	k := DefaultKeyMap()
	assert.True(t, k.Accept.Enabled())
	assert.False(t, k.Evaluate.Enabled())

	k.setMode(ModeCalc)
	assert.False(t, k.Accept.Enabled())
	assert.True(t, k.Evaluate.Enabled())
	assert.True(t, k.ToggleMode.Enabled())
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = typeText(t, m, "c")

	view := m.View()
	assert.Contains(t, view, "Typing")
	assert.Contains(t, view, "Calculator")
	assert.Contains(t, view, "Cake")
	assert.Contains(t, view, "use suggestion")

	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "x+1")
	m, _ = update(t, m, graphTickMsg{seq: m.graphSeq})
	view = m.View()
	assert.Contains(t, view, "= Error", "x alone has no value")
	assert.Contains(t, view, "*", "graph panel")
	assert.Contains(t, view, "switch mode")
	assert.NotContains(t, view, "use suggestion")
}

func TestView_DisplayName(t *testing.T) {
	m := newTestModel(t, nil)
	m.displayName = "Sam"
	assert.Contains(t, m.View(), "Hi, Sam")
}
