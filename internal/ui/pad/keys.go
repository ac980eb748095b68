// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pad

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the pad. Bindings that only make
// sense in one mode are disabled in the other, which also hides them from
// the help line.
type KeyMap struct {
	// Both modes
	ToggleMode key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Typing mode
	Accept   key.Binding
	NewLine  key.Binding
	SaveNote key.Binding

	// Calculator mode
	Evaluate   key.Binding
	Copy       key.Binding
	SendResult key.Binding
}

// DefaultKeyMap returns the default key bindings, set up for typing mode.
func DefaultKeyMap() KeyMap {
	k := KeyMap{
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc", "quit"),
		),
		Accept: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
			key.WithHelp("M-1..5", "use suggestion"),
		),
		NewLine: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "new line"),
		),
		SaveNote: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save note"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "="),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy result"),
		),
		SendResult: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "result to text"),
		),
	}
	k.setMode(ModeTyping)
	return k
}

// setMode enables the bindings for mode and disables the others.
func (k *KeyMap) setMode(mode Mode) {
	typing := mode == ModeTyping
	k.Accept.SetEnabled(typing)
	k.NewLine.SetEnabled(typing)
	k.SaveNote.SetEnabled(typing)
	k.Evaluate.SetEnabled(!typing)
	k.Copy.SetEnabled(!typing)
	k.SendResult.SetEnabled(!typing)
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Evaluate, k.ToggleMode, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Typing
		{k.Accept, k.NewLine, k.SaveNote},
		// Calculator
		{k.Evaluate, k.Copy, k.SendResult},
		// General
		{k.ToggleMode, k.Clear, k.Help, k.Quit},
	}
}

// suggestionIndex returns the 0-based suggestion slot for an alt+digit key,
// or -1.
func suggestionIndex(keyName string) int {
	if len(keyName) != len("alt+1") || keyName[:4] != "alt+" {
		return -1
	}
	d := keyName[4]
	if d < '1' || d > '0'+maxBar {
		return -1
	}
	return int(d - '1')
}
