// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

// Special keys that are not characters.
const (
	KeySpace  = "SPACE"
	KeyEnter  = "ENTER"
	KeyDelete = "DELETE"
)

// SpecialKeys lists every non-character key.
var SpecialKeys = []string{KeySpace, KeyEnter, KeyDelete}

var defaultABCKeys = []string{
	"A", "B", "C", "D", "E",
	"F", "G", "H", "I", "J",
	"K", "L", "M", "N", "O",
	"P", "Q", "R", "S", "T",
	"U", "V", "W", "X", "Y",
	"Z", ".", KeySpace, KeyEnter,
}

var defaultQwertyKeys = []string{
	"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P",
	"A", "S", "D", "F", "G", "H", "J", "K", "L",
	"Z", "X", "C", "V", "B", "N", "M",
	KeyDelete, ".", KeySpace, KeyEnter,
}

// The grid and the letterboard share one arrangement: letters in rows of
// five with punctuation down the right edge.
var defaultGridKeys = []string{
	"A", "B", "C", "D", "E", KeyDelete,
	"F", "G", "H", "I", "J", ",",
	"K", "L", "M", "N", "O", "!",
	"P", "Q", "R", "S", "T", "?",
	"U", "V", "W", "X", "Y", ".",
	"Z", KeySpace, KeyEnter,
}

var rowSizes = map[KeyboardLayout][]int{
	LayoutABC:         {5, 5, 5, 5, 5, 4},
	LayoutQwerty:      {10, 9, 7, 4},
	LayoutGrid:        {6, 6, 6, 6, 6, 3},
	LayoutLetterboard: {6, 6, 6, 6, 6, 3},
}

// DefaultLayout returns a fresh copy of the factory key order for layout.
func DefaultLayout(layout KeyboardLayout) []string {
	var keys []string
	switch layout {
	case LayoutABC:
		keys = defaultABCKeys
	case LayoutQwerty:
		keys = defaultQwertyKeys
	case LayoutGrid, LayoutLetterboard:
		keys = defaultGridKeys
	default:
		return nil
	}
	return append([]string(nil), keys...)
}

// RowSizes returns how many keys each row of layout holds.
func RowSizes(layout KeyboardLayout) []int {
	return append([]int(nil), rowSizes[layout]...)
}

// Rows splits keys into rows of the given sizes. Keys beyond the last row
// size form one extra row.
func Rows(keys []string, sizes []int) [][]string {
	var rows [][]string
	i := 0
	for _, n := range sizes {
		if i >= len(keys) {
			break
		}
		end := i + n
		if end > len(keys) {
			end = len(keys)
		}
		rows = append(rows, keys[i:end])
		i = end
	}
	if i < len(keys) {
		rows = append(rows, keys[i:])
	}
	return rows
}

func isSpecial(key string) bool {
	return key == KeySpace || key == KeyEnter || key == KeyDelete
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func without(keys []string, drop func(string) bool) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !drop(k) {
			out = append(out, k)
		}
	}
	return out
}

// gridLayoutOutdated reports whether a stored grid predates the current
// arrangement: it lacks a required key, carries a retired punctuation key,
// or has a different number of keys.
func gridLayoutOutdated(keys []string) bool {
	for _, required := range []string{KeyDelete, KeyEnter, KeySpace, ",", "!", "?", "."} {
		if !contains(keys, required) {
			return true
		}
	}
	for _, retired := range []string{"'", ":", "#"} {
		if contains(keys, retired) {
			return true
		}
	}
	return len(keys) != len(defaultGridKeys)
}
