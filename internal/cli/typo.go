// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// typo.go - "Did you mean" suggestions for mistyped commands.
package cli

import (
	"strings"
)

// commandNames maps every accepted command word to the primary command
// it runs, so a typo of an alias suggests the primary name.
var commandNames = map[string]string{
	"pad": "pad", "tui": "pad",
	"eval": "eval",
	"graph": "graph", "plot": "graph",
	"calc": "calc", "repl": "calc",
	"suggest": "suggest", "words": "suggest",
	"keys": "keys", "keypad": "keys",
	"prefs": "prefs", "preferences": "prefs",
	"history": "history", "hist": "history",
	"notes": "notes", "note": "notes",
	"serve": "serve", "server": "serve",
	"config": "config",
	"version": "version",
	"help": "help",
}

// SuggestCommand returns the primary command closest to input, or "" when
// nothing is within a small edit distance. Short inputs tolerate one edit,
// longer ones two or three.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)
	n := len([]rune(input))
	if n < 2 {
		return ""
	}
	if _, ok := commandNames[input]; ok {
		return ""
	}

	maxDistance := 1
	if n >= 4 {
		maxDistance = 2
	}
	if n > 8 {
		maxDistance = 3
	}

	best, bestDistance := "", maxDistance+1
	for word, primary := range commandNames {
		d := editDistance(input, word)
		// Ties go to the alphabetically first primary for stable output.
		if d < bestDistance || (d == bestDistance && primary < best) {
			best, bestDistance = primary, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b in runes.
func editDistance(a, b string) int {
	s, t := []rune(a), []rune(b)
	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}

	prev := make([]int, len(t)+1)
	curr := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s); i++ {
		curr[0] = i
		for j := 1; j <= len(t); j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(t)]
}
