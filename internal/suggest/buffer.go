// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"strings"

	"github.com/jeranaias/typebuddy/internal/util"
)

// Special key names sent by the on-screen keyboards.
const (
	KeySpace  = "SPACE"
	KeyEnter  = "ENTER"
	KeyDelete = "DELETE"
)

// Buffer is the text typed on the pad. Letters are stored lowercase the
// way the keyboard sends them; suggestions supply capitalisation. The zero
// value is an empty buffer using the default lexicon. A Buffer is not safe
// for concurrent use.
type Buffer struct {
	text      string
	suggester *Suggester
}

// NewBuffer returns an empty buffer backed by s (nil for the default).
func NewBuffer(s *Suggester) *Buffer {
	return &Buffer{suggester: s}
}

// Text returns the current text.
func (b *Buffer) Text() string { return b.text }

// SetText replaces the text, e.g. when loading a saved note.
func (b *Buffer) SetText(text string) { b.text = text }

// Press handles one keyboard key, including the SPACE, ENTER and DELETE
// special keys.
func (b *Buffer) Press(key string) {
	switch key {
	case KeySpace:
		b.Space()
	case KeyEnter:
		b.Enter()
	case KeyDelete:
		b.Backspace()
	default:
		b.Type(key)
	}
}

// Type appends key in lowercase.
func (b *Buffer) Type(key string) { b.text += strings.ToLower(key) }

// Space appends a space.
func (b *Buffer) Space() { b.text += " " }

// Enter appends a newline.
func (b *Buffer) Enter() { b.text += "\n" }

// Backspace removes the last character.
func (b *Buffer) Backspace() { b.text = util.DropLastRune(b.text) }

// Clear empties the buffer.
func (b *Buffer) Clear() { b.text = "" }

// Accept inserts a chosen suggestion: it replaces the partially typed word,
// or is appended after whitespace, and is followed by a space.
func (b *Buffer) Accept(word string) {
	b.text = b.text[:wordStart(b.text)] + word + " "
}

// AppendResult appends a calculator result followed by a space.
func (b *Buffer) AppendResult(result string) { b.text += result + " " }

// Suggestions returns suggestions for the current text.
func (b *Buffer) Suggestions(max int) []string {
	if b.suggester == nil {
		b.suggester = New(nil)
	}
	return b.suggester.Suggest(b.text, max)
}
