// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"times", "2×3", "2*3"},
		{"divide", "8÷2", "8/2"},
		{"pi", "π", piLiteral},
		{"pi after digit fuses", "2π", "2" + piLiteral},
		{"e", "e", eLiteral},
		{"upper E", "E", eLiteral},
		{"e next to number fuses", "3e", "3" + eLiteral},
		{"e between digits", "1e5", "1" + eLiteral + "5"},
		{"e before letter untouched", "ex", "ex"},
		{"exp keeps its e", "exp(1)", "exp(1)"},
		{"sqrt", "√(16)", "sqrt(16)"},
		{"cbrt", "∛(27)", "cbrt(27)"},
		{"radical without paren", "√16", "√16"},
		{"log is base ten", "log(100)", "log10(100)"},
		{"canonical log10", "log10(100)", "log10(100)"},
		{"ln", "ln(e)", "ln(" + eLiteral + ")"},
		{"trig", "sin(0)+cos(0)+tan(0)", "sin(0)+cos(0)+tan(0)"},
		{"hyperbolic", "sinh(1)-tanh(1)", "sinh(1)-tanh(1)"},
		{"factorial", "5!", "factorial(5)"},
		{"two factorials", "3!+4!", "factorial(3)+factorial(4)"},
		{"factorial of group untouched", "(2+3)!", "(2+3)!"},
		{"factorial of decimal untouched", "5.5!", "5.5!"},
		{"power", "2^10", "2**10"},
		{"mod word", "7 mod 3", "7 % 3"},
		{"mod glued", "7mod3", "7%3"},
		{"percent stays modulo", "7%3", "7%3"},
		{"auto close", "((2+3", "((2+3))"},
		{"surplus close kept", "2+3)", "2+3)"},
		{"uppercase function passes through", "Sin(0)", "Sin(0)"},
		{"unknown word passes through", "foo+1", "foo+1"},
		{"whitespace preserved", " 1 + 2 ", " 1 + 2 "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestBind(t *testing.T) {
	tests := []struct {
		expr     string
		variable string
		value    float64
		want     string
	}{
		{"x^2", "x", -2, "(-2)**2"},
		{"2*x+1", "x", 1.5, "2*(1.5)+1"},
		{"2X", "x", 3, "2(3)"},
		{"3x", "x", -1, "3(-1)"},
		{"exp(x)", "x", 0, "exp((0))"},
		{"x(x+1)", "x", 2, "(2)((2)+1)"},
		{"max", "x", 1, "max"},
		{"x", "xy", 1, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, Bind(tt.expr, tt.variable, tt.value))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	canonical := []string{
		"2**3",
		"1+2*3",
		"(1+2)*3",
		"10 % 4",
		"sqrt(4)+cbrt(8)",
		"log10(100)",
		"ln(1)",
		"factorial(5)",
		"-2**-1",
		"1.5/0.25",
	}

	for _, expr := range canonical {
		once := Normalize(expr)
		assert.Equal(t, expr, once, "canonical input should be unchanged")
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalize_ParenBalance(t *testing.T) {
	alphabet := []string{
		"(", ")", "1", "2", ".", "+", "-", "×", "÷", "^", "π", "e", "√", "∛",
		"sin", "log", "mod", "!", " ", "x",
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		var b strings.Builder
		for j := rng.Intn(20); j >= 0; j-- {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		input := b.String()
		out := Normalize(input)

		inOpen, inClose := strings.Count(input, "("), strings.Count(input, ")")
		outOpen, outClose := strings.Count(out, "("), strings.Count(out, ")")
		if inOpen >= inClose {
			assert.Equal(t, outOpen, outClose, "input %q -> %q", input, out)
		} else {
			assert.Equal(t, inClose-inOpen, outClose-outOpen, "surplus ')' must survive: %q", input)
		}
	}
}

func TestMentionsVariable(t *testing.T) {
	assert.True(t, MentionsVariable("2x+1", "x"))
	assert.True(t, MentionsVariable("sin(X)", "x"))
	assert.False(t, MentionsVariable("exp(2)", "x"))
	assert.False(t, MentionsVariable("max(1)", "x"))
	assert.False(t, MentionsVariable("x", ""))
}
