// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var builtinLexicon []byte

// ErrEmptyLexicon is returned when a lexicon has no words.
var ErrEmptyLexicon = errors.New("suggest: lexicon has no words")

// Lexicon is the vocabulary suggestions are drawn from.
type Lexicon struct {
	Words    []string            `yaml:"words"`
	Bigrams  map[string][]string `yaml:"bigrams"`
	Defaults []string            `yaml:"defaults"`
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// DefaultLexicon returns the embedded lexicon. The result is shared and
// must not be modified.
func DefaultLexicon() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := parseLexicon(builtinLexicon)
		if err != nil {
			panic(fmt.Sprintf("suggest: embedded lexicon is invalid: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// LoadLexicon reads a YAML lexicon from r.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return parseLexicon(data)
}

// LoadLexiconFile reads a YAML lexicon from path.
func LoadLexiconFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()
	return LoadLexicon(f)
}

func parseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if err := lex.normalize(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// normalize trims entries, drops blanks and duplicate words, and lowercases
// bigram keys. Missing defaults fall back to the built-in ones.
func (l *Lexicon) normalize() error {
	seen := make(map[string]bool, len(l.Words))
	words := l.Words[:0]
	for _, w := range l.Words {
		w = strings.TrimSpace(w)
		if w == "" || seen[strings.ToLower(w)] {
			continue
		}
		seen[strings.ToLower(w)] = true
		words = append(words, w)
	}
	l.Words = words
	if len(l.Words) == 0 {
		return ErrEmptyLexicon
	}

	bigrams := make(map[string][]string, len(l.Bigrams))
	for k, v := range l.Bigrams {
		bigrams[strings.ToLower(strings.TrimSpace(k))] = v
	}
	l.Bigrams = bigrams

	if len(l.Defaults) == 0 {
		l.Defaults = []string{"I", "The", "My", "A", "We"}
	}
	return nil
}
