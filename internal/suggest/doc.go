// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest provides word suggestions for the typing pad.
//
// Suggestions come from a small kid-friendly lexicon: prefix completions of
// the word being typed, boosted by bigrams (words that commonly follow the
// previous word). The lexicon ships embedded as YAML and can be replaced
// from a file.
//
// # Key Types
//
//   - Lexicon: Word list, bigrams and default suggestions
//   - Suggester: Ranks suggestions for a piece of text
//   - Buffer: The text being typed, with key, backspace and accept actions
//
// # Usage
//
//	s := suggest.New(suggest.DefaultLexicon())
//	s.Suggest("I like the c", 5) // [can car cat cake city]
//
//	var b suggest.Buffer
//	b.Type("h")
//	b.Accept("hello") // "hello "
package suggest
