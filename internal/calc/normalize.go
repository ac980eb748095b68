// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	piLiteral = "3.141592653589793"
	eLiteral  = "2.718281828459045"
)

// functionNames maps a lowercase name written before "(" to its canonical
// spelling. Canonical names map to themselves so Normalize is idempotent.
var functionNames = map[string]string{
	"sin":       "sin",
	"cos":       "cos",
	"tan":       "tan",
	"asin":      "asin",
	"acos":      "acos",
	"atan":      "atan",
	"sinh":      "sinh",
	"cosh":      "cosh",
	"tanh":      "tanh",
	"log":       "log10",
	"ln":        "ln",
	"abs":       "abs",
	"floor":     "floor",
	"ceil":      "ceil",
	"round":     "round",
	"exp":       "exp",
	"sqrt":      "sqrt",
	"cbrt":      "cbrt",
	"factorial": "factorial",
}

// binding renders every letter run equal to name (case-insensitive).
type binding struct {
	name   string
	render string
}

// Normalize rewrites keypad notation into canonical arithmetic text.
//
// The canonical form uses digits, "+ - * / % **", parentheses and calls to
// the built-in functions. Missing ")" are appended for every unmatched "(";
// surplus ")" are left alone. Normalize never fails: text it does not
// recognise is copied through and rejected later by the parser.
func Normalize(expression string) string {
	return normalize(expression, nil)
}

// Bind normalizes expression with every occurrence of variable replaced by
// the parenthesised literal value, e.g. Bind("x^2", "x", -1) is "(-1)**2".
// Substitution is textual: "3x" binds to "3(-1)", which the parser rejects.
func Bind(expression, variable string, value float64) string {
	if !validVariable(variable) {
		return Normalize(expression)
	}
	return normalize(expression, &binding{
		name:   variable,
		render: "(" + strconv.FormatFloat(value, 'f', -1, 64) + ")",
	})
}

type normalizer struct {
	src  []rune
	i    int
	out  strings.Builder
	bind *binding
}

func normalize(expression string, bind *binding) string {
	n := &normalizer{src: []rune(expression), bind: bind}
	n.out.Grow(len(expression) + 8)
	for n.i < len(n.src) {
		n.step()
	}

	canonical := n.out.String()
	if missing := strings.Count(canonical, "(") - strings.Count(canonical, ")"); missing > 0 {
		canonical += strings.Repeat(")", missing)
	}
	return canonical
}

// step consumes one lexeme.
func (n *normalizer) step() {
	r := n.src[n.i]
	switch {
	case unicode.IsSpace(r):
		n.out.WriteRune(r)
		n.i++

	case r == '×':
		n.operator("*")
	case r == '÷':
		n.operator("/")
	case r == '^':
		n.operator("**")
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '%':
		n.operator(string(r))

	case r == 'π':
		n.out.WriteString(piLiteral)
		n.i++

	case (r == '√' || r == '∛') && n.peek(1) == '(':
		if r == '√' {
			n.out.WriteString("sqrt")
		} else {
			n.out.WriteString("cbrt")
		}
		n.i++

	case r == '(' || r == ')':
		n.out.WriteRune(r)
		n.i++

	case isDigit(r) || r == '.':
		n.number()
	case isLetter(r):
		n.word()

	default:
		n.out.WriteRune(r)
		n.i++
	}
}

// number consumes a run of digits and dots. A pure digit run directly
// followed by "!" becomes a factorial call.
func (n *normalizer) number() {
	start := n.i
	digitsOnly := true
	for n.i < len(n.src) && (isDigit(n.src[n.i]) || n.src[n.i] == '.') {
		if n.src[n.i] == '.' {
			digitsOnly = false
		}
		n.i++
	}
	run := string(n.src[start:n.i])

	if digitsOnly && n.peek(0) == '!' {
		n.out.WriteString("factorial(" + run + ")")
		n.i++
		return
	}
	n.out.WriteString(run)
}

// word consumes a run of ASCII letters. Constants and the bound variable
// are substituted in place with no operator inserted, so "2π" reads as the
// digit run "23.141592653589793".
func (n *normalizer) word() {
	start := n.i
	for n.i < len(n.src) && isLetter(n.src[n.i]) {
		n.i++
	}
	run := string(n.src[start:n.i])

	switch {
	case n.bind != nil && strings.EqualFold(run, n.bind.name):
		n.out.WriteString(n.bind.render)
	case strings.EqualFold(run, "e"):
		n.out.WriteString(eLiteral)
	case run == "mod":
		n.out.WriteByte('%')
	case run == "log" && n.hasPrefix("10("):
		n.out.WriteString("log10")
		n.i += 2
	default:
		if name, ok := functionNames[run]; ok && n.peek(0) == '(' {
			n.out.WriteString(name)
			return
		}
		n.out.WriteString(run)
	}
}

func (n *normalizer) operator(text string) {
	n.out.WriteString(text)
	n.i++
}

func (n *normalizer) peek(offset int) rune {
	if n.i+offset < len(n.src) {
		return n.src[n.i+offset]
	}
	return 0
}

func (n *normalizer) hasPrefix(s string) bool {
	for k, r := range []rune(s) {
		if n.peek(k) != r {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// ValidVariable reports whether name can be bound as a variable: a single
// ASCII letter.
func ValidVariable(name string) bool { return validVariable(name) }

func validVariable(name string) bool {
	return len(name) == 1 && isLetter(rune(name[0]))
}
