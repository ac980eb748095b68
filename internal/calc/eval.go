// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type node interface {
	eval(x float64) float64
}

type nodeNumber struct{ v float64 }

type nodeVar struct{}

type nodeNeg struct{ x node }

type nodeBinary struct {
	op          byte
	left, right node
}

type nodeCall struct {
	name string
	fn   func(float64) float64
	arg  node
}

func (n nodeNumber) eval(float64) float64 { return n.v }
func (nodeVar) eval(x float64) float64    { return x }
func (n nodeNeg) eval(x float64) float64  { return -n.x.eval(x) }
func (n nodeCall) eval(x float64) float64 { return n.fn(n.arg.eval(x)) }

// Intermediate infinities are allowed (1/(1/0) is 0); only the final value
// is checked.
func (n nodeBinary) eval(x float64) float64 {
	a, b := n.left.eval(x), n.right.eval(x)
	switch n.op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	case '%':
		return math.Mod(a, b)
	case '^':
		return math.Pow(a, b)
	}
	return math.NaN()
}

var builtins = map[string]func(float64) float64{
	"sqrt":      math.Sqrt,
	"cbrt":      math.Cbrt,
	"sin":       math.Sin,
	"cos":       math.Cos,
	"tan":       math.Tan,
	"asin":      math.Asin,
	"acos":      math.Acos,
	"atan":      math.Atan,
	"sinh":      math.Sinh,
	"cosh":      math.Cosh,
	"tanh":      math.Tanh,
	"log10":     math.Log10,
	"ln":        math.Log,
	"abs":       math.Abs,
	"floor":     math.Floor,
	"ceil":      math.Ceil,
	"round":     roundHalfUp,
	"exp":       math.Exp,
	"factorial": factorial,
}

// Functions returns the names of the built-in functions accepted in
// canonical text, sorted.
func Functions() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so round(2.5) is 3 and round(-2.5) is -2.
func roundHalfUp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

// maxFactorial bounds the factorial ladder; anything above overflows.
const maxFactorial = 171

// factorial computes n * (n-1) * ... down to the first factor at most 1,
// which counts as 1. Factors are multiplied smallest first, the order the
// recursive definition produces. Non-integers follow the same ladder
// (factorial(2.5) = 2.5 * 1.5).
func factorial(n float64) float64 {
	if math.IsNaN(n) {
		return n
	}
	if n > maxFactorial {
		return math.Inf(1)
	}
	var ladder [maxFactorial + 1]float64
	k := 0
	for ; n > 1; n-- {
		ladder[k] = n
		k++
	}
	r := 1.0
	for i := k - 1; i >= 0; i-- {
		r *= ladder[i]
	}
	return r
}

// Program is a parsed expression ready for repeated evaluation.
type Program struct {
	source    string
	canonical string
	variable  string
	root      node
}

// Compile normalizes and parses expression. When variable is a single
// letter, every occurrence of it (case-insensitive) is bound to the value
// passed to Eval; otherwise the expression must be closed.
func Compile(expression, variable string) (*Program, error) {
	var canonical string
	v := ""
	if validVariable(variable) {
		v = strings.ToLower(variable)
		canonical = normalize(expression, &binding{name: v, render: v})
	} else {
		canonical = Normalize(expression)
	}

	root, err := parse(canonical, v)
	if err != nil {
		return nil, err
	}
	return &Program{source: expression, canonical: canonical, variable: v, root: root}, nil
}

// Canonical returns the normalized text the program was parsed from.
func (p *Program) Canonical() string { return p.canonical }

// Variable returns the bound variable, or "" for a closed expression.
func (p *Program) Variable() string { return p.variable }

// Eval evaluates the program with the bound variable set to x. It returns
// ErrDomain for infinite or NaN results.
func (p *Program) Eval(x float64) (float64, error) {
	y := p.root.eval(x)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: %s", ErrDomain, formatNonFinite(y))
	}
	return y, nil
}

// Eval evaluates expression and returns its numeric value or a typed error
// wrapping ErrSyntax, ErrUnknownIdent or ErrDomain.
func Eval(expression string) (float64, error) {
	prog, err := Compile(expression, "")
	if err != nil {
		return 0, err
	}
	return prog.Eval(0)
}

// Evaluate evaluates expression and formats the result for display. Every
// failure collapses to ErrorResult ("Error").
func Evaluate(expression string) string {
	v, err := Eval(expression)
	if err != nil {
		return ErrorResult
	}
	return FormatResult(v)
}

func formatNonFinite(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return "NaN"
}
