// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Keys(t *testing.T) {
	var b Buffer
	for _, k := range []string{"H", "I", KeySpace, "T", "H", "E", "R", "E", "DELETE", KeyEnter} {
		b.Press(k)
	}
	assert.Equal(t, "hi ther\n", b.Text())

	b.Clear()
	assert.Equal(t, "", b.Text())

	b.Backspace()
	assert.Equal(t, "", b.Text())
}

func TestBuffer_BackspaceMultibyte(t *testing.T) {
	b := NewBuffer(nil)
	b.SetText("hé")
	b.Backspace()
	assert.Equal(t, "h", b.Text())
}

func TestBuffer_Accept(t *testing.T) {
	tests := []struct {
		name string
		text string
		word string
		want string
	}{
		{"replaces partial word", "i like the c", "cat", "i like the cat "},
		{"replaces only word", "h", "Hello", "Hello "},
		{"appends after space", "hello ", "world", "hello world "},
		{"appends after newline", "hello\n", "The", "hello\nThe "},
		{"appends to empty", "", "I", "I "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(nil)
			b.SetText(tt.text)
			b.Accept(tt.word)
			assert.Equal(t, tt.want, b.Text())
		})
	}
}

func TestBuffer_AppendResult(t *testing.T) {
	var b Buffer
	b.SetText("two plus two is ")
	b.AppendResult("4")
	assert.Equal(t, "two plus two is 4 ", b.Text())
}

func TestBuffer_Suggestions(t *testing.T) {
	var b Buffer
	assert.Equal(t, []string{"I", "The", "My", "A", "We"}, b.Suggestions(5))

	b.SetText("my ")
	assert.Equal(t, []string{"mom", "dad"}, b.Suggestions(2))

	b.Type("D")
	b.Accept(b.Suggestions(1)[0])
	assert.Equal(t, "my do ", b.Text())
}
