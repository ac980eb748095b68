// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import "github.com/jeranaias/typebuddy/internal/util"

// =============================================================================
// BUTTON LAYOUTS
// =============================================================================

// Button labels with special meaning on the keypad.
const (
	KeyClear     = "C"
	KeyBackspace = "DEL"
	KeyEquals    = "="
)

// Buttons is the basic calculator keypad, row by row.
var Buttons = [][]string{
	{"C", "DEL", "(", ")"},
	{"7", "8", "9", "÷"},
	{"4", "5", "6", "×"},
	{"1", "2", "3", "-"},
	{"0", ".", "=", "+"},
}

// ScientificButtons is the scientific keypad panel.
var ScientificButtons = [][]string{
	{"sin", "cos", "tan", "√"},
	{"asin", "acos", "atan", "∛"},
	{"log", "ln", "e", "^"},
	{"π", "!", "mod", "%"},
	{"abs", "floor", "ceil", "round"},
}

// AdvancedButtons is the hyperbolic/exponential panel.
var AdvancedButtons = [][]string{
	{"sinh", "cosh", "tanh", "exp"},
}

var operatorLabels = map[string]bool{
	"+": true, "-": true, "×": true, "÷": true, "^": true,
	"(": true, ")": true, "%": true, "mod": true,
}

var functionLabels = map[string]bool{
	"sin": true, "cos": true, "tan": true, "√": true, "log": true, "ln": true,
	"asin": true, "acos": true, "atan": true, "sinh": true, "cosh": true,
	"tanh": true, "abs": true, "floor": true, "ceil": true, "round": true,
	"exp": true, "∛": true,
}

// IsOperator reports whether a button label is an operator or parenthesis.
func IsOperator(label string) bool { return operatorLabels[label] }

// IsFunction reports whether a button label inserts a function call.
func IsFunction(label string) bool { return functionLabels[label] }

// =============================================================================
// KEYPAD BUFFER
// =============================================================================

// Keypad is the expression being typed on the calculator. The zero value
// is an empty keypad. A Keypad is not safe for concurrent use.
type Keypad struct {
	expr   string
	result string
}

// Press applies one button. "=" evaluates the expression and returns the
// formatted result with evaluated set; a successful result replaces the
// expression so the next press continues from it, while "Error" leaves
// the expression for the user to fix.
func (k *Keypad) Press(label string) (result string, evaluated bool) {
	if label != KeyEquals {
		k.result = ""
	}
	switch {
	case label == KeyClear:
		k.expr = ""
	case label == KeyBackspace:
		k.expr = util.DropLastRune(k.expr)
	case label == KeyEquals:
		k.result = Evaluate(k.expr)
		if k.result != ErrorResult {
			k.expr = k.result
		}
		return k.result, true
	case IsFunction(label):
		k.expr += label + "("
	default:
		k.expr += label
	}
	return "", false
}

// Expression returns the current buffer.
func (k *Keypad) Expression() string { return k.expr }

// SetExpression replaces the buffer, e.g. when typed directly.
func (k *Keypad) SetExpression(expr string) {
	k.expr = expr
	k.result = ""
}

// Result returns the last "=" result, or "" if the buffer changed since.
func (k *Keypad) Result() string { return k.result }

// Preview evaluates the buffer without committing it. An empty buffer
// previews as "".
func (k *Keypad) Preview() string {
	if k.expr == "" {
		return ""
	}
	return Evaluate(k.expr)
}
