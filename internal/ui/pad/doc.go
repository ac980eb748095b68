// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package pad provides the full-screen terminal pad started by `typebuddy`.

The pad has two modes, switched with Tab:

  - Typing: a text line with a suggestion bar. Alt+1..5 puts a suggested
    word in place of the one being typed; Enter starts a new line and
    Ctrl+S keeps the whole text as a note.
  - Calculator: an expression line with the live result and canonical
    form underneath. Expressions that use the graph variable get an ASCII
    plot that is redrawn once typing pauses. Enter evaluates and records
    the calculation in history, Ctrl+Y copies the result and Ctrl+R sends
    it to the typed text.

# Key Types

  - Model: the Bubble Tea model
  - Options: config, storage, suggester, preferences and theme
  - KeyMap: key bindings and help

# Usage

	err := pad.Run(pad.Options{
		Config:    cfg,
		Store:     store,
		Suggester: suggest.New(nil),
		Prefs:     &p,
	})
*/
package pad
