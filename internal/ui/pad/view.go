// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pad

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/ui/plot"
	"github.com/jeranaias/typebuddy/internal/ui/styles"
	"github.com/jeranaias/typebuddy/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.renderHeader()}
	if m.mode == ModeTyping {
		sections = append(sections, m.renderTyping())
	} else {
		sections = append(sections, m.renderCalc())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := "typebuddy"
	if m.displayName != "" {
		title += " - Hi, " + m.displayName
	}

	tabs := make([]string, 0, 2)
	for _, mode := range []Mode{ModeTyping, ModeCalc} {
		if mode == m.mode {
			tabs = append(tabs, m.theme.ModeTabActive.Render(mode.String()))
		} else {
			tabs = append(tabs, m.theme.ModeTab.Render(mode.String()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.Header.Render(title),
		" ",
		strings.Join(tabs, ""),
	)
}

// =============================================================================
// TYPING MODE
// =============================================================================

func (m Model) renderTyping() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.typing.View())

	area := m.theme.TypingArea
	if m.width > 0 {
		area = area.Width(m.width - 2)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		area.Render(b.String()),
		m.renderSuggestions(),
	)
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return m.theme.SuggestionIndex.Render("No suggestions")
	}
	chips := make([]string, 0, len(m.suggestions))
	for i, word := range m.suggestions {
		chips = append(chips,
			m.theme.SuggestionIndex.Render(fmt.Sprintf("%d", i+1))+
				m.theme.Suggestion.Render(word))
	}
	return strings.Join(chips, " ")
}

// =============================================================================
// CALCULATOR MODE
// =============================================================================

func (m Model) renderCalc() string {
	input := m.theme.ExprInput
	if m.width > 0 {
		input = input.Width(m.width - 2)
	}

	lines := []string{input.Render(m.expr.View())}

	switch {
	case m.preview == calc.ErrorResult:
		lines = append(lines, m.theme.ResultError.Render("= "+m.preview))
	case m.preview != "":
		lines = append(lines, m.theme.Result.Render("= "+m.preview))
	}
	if m.canonical != "" && m.canonical != m.expr.Value() {
		lines = append(lines, m.theme.Canonical.Render(m.canonical))
	}
	if graph := m.renderGraph(); graph != "" {
		lines = append(lines, graph)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderGraph() string {
	if len(m.graph) == 0 || (m.width > 0 && m.theme.GetLayoutMode() == styles.LayoutNarrow) {
		return ""
	}

	width, height := plot.DefaultWidth, plot.DefaultHeight
	if m.width > 0 {
		// Leave room for the y labels and the box border.
		width = m.width - 16
	}
	if m.height > 0 {
		height = m.height - 12
	}
	if height > plot.DefaultHeight {
		height = plot.DefaultHeight
	}

	c := m.cfg.Calculator
	chart := plot.Render(m.graph, plot.Options{
		Width:  width,
		Height: height,
		XMin:   c.XMin,
		XMax:   c.XMax,
	})
	caption := util.Center("y = "+m.canonical, lipgloss.Width(chart))
	return m.theme.GraphBox.Render(caption + "\n" + strings.TrimRight(chart, "\n"))
}

// =============================================================================
// FOOTER
// =============================================================================

func (m Model) renderFooter() string {
	var parts []string
	if m.flash != "" {
		parts = append(parts, m.theme.Flash.Render(m.flash))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
