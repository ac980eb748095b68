// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme(ModeDark, "", "")

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	if !theme.IsDark {
		t.Error("NewTheme(dark) should set IsDark")
	}
	if theme.ButtonColor != lipgloss.Color(DefaultButtonColor) {
		t.Errorf("ButtonColor = %q, want default %q", theme.ButtonColor, DefaultButtonColor)
	}
	if theme.ButtonTextColor != lipgloss.Color(DefaultButtonTextColor) {
		t.Errorf("ButtonTextColor = %q, want default", theme.ButtonTextColor)
	}
}

func TestNewTheme_Modes(t *testing.T) {
	if NewTheme(ModeLight, "", "").IsDark {
		t.Error("light mode should not be dark")
	}
	if !NewTheme("DARK", "", "").IsDark {
		t.Error("mode should be case insensitive")
	}
	// auto must not panic without a terminal
	_ = NewTheme(ModeAuto, "", "")
}

func TestNewTheme_ButtonColor(t *testing.T) {
	theme := NewTheme(ModeDark, "#93C5FD", "#111111")
	if theme.ButtonColor != "#93C5FD" {
		t.Errorf("ButtonColor = %q", theme.ButtonColor)
	}
	if theme.ButtonTextColor != "#111111" {
		t.Errorf("ButtonTextColor = %q", theme.ButtonTextColor)
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ModeDark, "", "")

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"ModeTabActive", theme.ModeTabActive},
		{"TypingArea", theme.TypingArea},
		{"Suggestion", theme.Suggestion},
		{"ExprInput", theme.ExprInput},
		{"Result", theme.Result},
		{"GraphBox", theme.GraphBox},
		{"StatusBar", theme.StatusBar},
		{"Key", theme.Key},
	}

	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestThemeLayoutMode(t *testing.T) {
	theme := NewTheme(ModeDark, "", "")

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %d, want %d", tt.width, got, tt.want)
		}
		if theme.Width != tt.width || theme.Height != 24 {
			t.Errorf("SetSize(%d, 24) not applied", tt.width)
		}
	}
}
