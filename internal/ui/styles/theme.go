// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme. They match the ui.theme config values.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the lip gloss styles used by the pad.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Dimensions
	Width  int
	Height int

	// Key colour from the user's preferences
	ButtonColor     lipgloss.Color
	ButtonTextColor lipgloss.Color

	// Header and mode tabs
	Header        lipgloss.Style
	ModeTab       lipgloss.Style
	ModeTabActive lipgloss.Style

	// Typing mode
	TypingArea      lipgloss.Style
	Suggestion      lipgloss.Style
	SuggestionIndex lipgloss.Style

	// Calculator mode
	ExprInput   lipgloss.Style
	Result      lipgloss.Style
	ResultError lipgloss.Style
	Canonical   lipgloss.Style
	GraphBox    lipgloss.Style

	// Footer
	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Key       lipgloss.Style
	Flash     lipgloss.Style
}

// NewTheme creates a theme for the given mode ("auto", "dark" or "light")
// using buttonColor and buttonText for suggestion chips and keys. Empty
// colours fall back to the defaults.
func NewTheme(mode, buttonColor, buttonText string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	if buttonColor == "" {
		buttonColor = DefaultButtonColor
	}
	if buttonText == "" {
		buttonText = DefaultButtonTextColor
	}

	t := &Theme{
		IsDark:          isDark,
		HasTrueColor:    colorProfile == termenv.TrueColor,
		ColorProfile:    colorProfile,
		ButtonColor:     lipgloss.Color(buttonColor),
		ButtonTextColor: lipgloss.Color(buttonText),
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ModeTab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ModeTabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Underline(true).
		Padding(0, 1)

	t.TypingArea = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Suggestion chips use the key colour so they read like on-screen buttons.
	t.Suggestion = lipgloss.NewStyle().
		Foreground(t.ButtonTextColor).
		Background(t.ButtonColor).
		Padding(0, 1).
		MarginRight(1)

	t.SuggestionIndex = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ExprInput = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.Result = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.ResultError = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.Canonical = lipgloss.NewStyle().
		Foreground(Cyan).
		Italic(true)

	t.GraphBox = lipgloss.NewStyle().
		Foreground(Amber).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	// ACCESSIBILITY: keys are bold so they stand out without colour
	t.Key = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.ButtonTextColor).
		Background(t.ButtonColor).
		Padding(0, 1)

	t.Flash = lipgloss.NewStyle().
		Foreground(Amber)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
