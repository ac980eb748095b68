// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMax is the number of suggestions shown when the caller does not
// choose one.
const DefaultMax = 5

// Suggester ranks lexicon words for the text being typed. It is safe for
// concurrent use.
type Suggester struct {
	lex    *Lexicon
	folded []string

	// collate.Collator keeps scratch buffers and is not goroutine safe.
	mu       sync.Mutex
	collator *collate.Collator
}

// New returns a Suggester over lex. A nil lex uses DefaultLexicon.
func New(lex *Lexicon) *Suggester {
	if lex == nil {
		lex = DefaultLexicon()
	}
	folded := make([]string, len(lex.Words))
	for i, w := range lex.Words {
		folded[i] = fold(w)
	}
	return &Suggester{
		lex:      lex,
		folded:   folded,
		collator: collate.New(language.English),
	}
}

// Lexicon returns the vocabulary the suggester draws from.
func (s *Suggester) Lexicon() *Lexicon { return s.lex }

// Suggest returns up to max words for text (DefaultMax when max <= 0).
//
// The word being typed is the final run of non-space characters; if text
// ends in whitespace it is empty and the word before it is the last
// complete word. With nothing typed the bigrams of the previous word are
// offered, or the lexicon defaults. Otherwise words starting with the
// typed prefix (accents ignored, exact matches skipped) and bigrams of the
// previous word starting with it are merged, ordered shortest first then
// alphabetically, and capitalised at the start of a sentence.
//
// Trailing whitespace is significant: "the" completes the word, "the "
// offers the words that follow it.
func (s *Suggester) Suggest(text string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}
	last, previous, before := splitLast(text)

	if last == "" {
		if next, ok := s.lex.Bigrams[previous]; ok {
			return head(next, max)
		}
		return head(s.lex.Defaults, max)
	}

	prefix := fold(last)
	seen := make(map[string]bool)
	var matches []string
	add := func(w string) {
		key := strings.ToLower(w)
		if !seen[key] {
			seen[key] = true
			matches = append(matches, w)
		}
	}

	for _, w := range s.lex.Bigrams[previous] {
		if strings.HasPrefix(fold(w), prefix) {
			add(w)
		}
	}
	for i, w := range s.lex.Words {
		if strings.HasPrefix(s.folded[i], prefix) && s.folded[i] != prefix {
			add(w)
		}
	}

	s.mu.Lock()
	sort.SliceStable(matches, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(matches[i]), utf8.RuneCountInString(matches[j])
		if li != lj {
			return li < lj
		}
		return s.collator.CompareString(matches[i], matches[j]) < 0
	})
	s.mu.Unlock()

	matches = head(matches, max)
	if startsSentence(before) {
		for i, w := range matches {
			matches[i] = capitalize(w)
		}
	}
	return matches
}

// splitLast returns the lowercased word being typed, the lowercased word
// before it, and the raw text preceding the word being typed.
func splitLast(text string) (last, previous, before string) {
	fields := strings.Fields(strings.ToLower(text))
	trailingSpace := text == "" || unicode.IsSpace(lastRune(text))

	if trailingSpace {
		if len(fields) > 0 {
			previous = fields[len(fields)-1]
		}
		return "", previous, text
	}

	last = fields[len(fields)-1]
	if len(fields) > 1 {
		previous = fields[len(fields)-2]
	}
	return last, previous, text[:wordStart(text)]
}

// wordStart returns the byte offset where the final word of text begins.
func wordStart(text string) int {
	i := strings.LastIndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return 0
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return i + size
}

// startsSentence reports whether a word following before begins a
// sentence: before is blank or ends with ".", "!" or "?" plus optional
// whitespace.
func startsSentence(before string) bool {
	trimmed := strings.TrimRightFunc(before, unicode.IsSpace)
	if trimmed == "" {
		return true
	}
	switch lastRune(trimmed) {
	case '.', '!', '?':
		return true
	}
	return false
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func head(words []string, max int) []string {
	if len(words) > max {
		words = words[:max]
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// fold lowercases s and strips combining marks so "Café" matches "cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}
