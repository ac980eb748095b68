// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+2", "4"},
		{"10/4", "2.5"},
		{"1/0", "Error"},
		{"√(16)", "4"},
		{"5!", "120"},
		{"sin(0)", "0"},
		{"2^10", "1024"},
		{"((2+3", "5"},
		{"", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateExpression(tt.input))
		})
	}
}

func TestEvaluate_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"10-4-3", "3"},
		{"64/4/2", "8"},
		{"2^3^2", "512"},
		{"-2^2", "4"},
		{"2^-1", "0.5"},
		{"-3+5", "2"},
		{"2*-3", "-6"},
		{"+4", "4"},
		{"10 mod 4", "2"},
		{"-7 % 3", "-1"},
		{"2×3÷4", "1.5"},
		{"7 mod 4 * 2", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.input))
		})
	}
}

func TestEvaluate_Functions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"∛(27)", "3"},
		{"√(2)", "1.414213562"},
		{"log(1000)", "3"},
		{"ln(1)", "0"},
		{"ln(e)", "1"},
		{"exp(0)", "1"},
		{"abs(-5)", "5"},
		{"floor(2.7)", "2"},
		{"ceil(2.1)", "3"},
		{"round(2.5)", "3"},
		{"round(-2.5)", "-2"},
		{"round(2.4)", "2"},
		{"cos(0)", "1"},
		{"sinh(0)", "0"},
		{"cosh(0)", "1"},
		{"atan(0)", "0"},
		{"asin(1)*2", "3.141592654"},
		{"0!", "1"},
		{"1!", "1"},
		{"3!+4!", "30"},
		{"20!", "2432902008176640000"},
		{"factorial(2.5)", "3.75"},
		{"sqrt(9)", "3"},
		{"log10(100)", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.input))
		})
	}
}

func TestEvaluate_Constants(t *testing.T) {
	assert.Equal(t, "3.141592654", Evaluate("π"))
	assert.Equal(t, "2.718281828", Evaluate("e"))
	assert.Equal(t, "2.718281828", Evaluate("E"))
	assert.Equal(t, "6.283185307", Evaluate("2×π"))
	assert.Equal(t, "7.389056099", Evaluate("e^2"))
}

func TestEvaluate_ConstantsSubstituteInPlace(t *testing.T) {
	// No operator is inserted next to a constant; the literal's digits
	// join the neighbouring digit run.
	assert.Equal(t, "23.14159265", Evaluate("2π"))
	assert.Equal(t, "12.71828183", Evaluate("1e5"))
	assert.Equal(t, ErrorResult, Evaluate("ππ"))
	assert.Equal(t, ErrorResult, Evaluate("π(2)"))
}

func TestEvaluate_Formatting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0.1+0.2", "0.3"},
		{"1/3", "0.3333333333"},
		{"2/3", "0.6666666667"},
		{"-0", "0"},
		{"0*-1", "0"},
		{".5+.5", "1"},
		{"05+3", "8"},
		{"1/8000000", "1.25e-7"},
		{"10^21", "1e+21"},
		{"2^70", "1.1805916207174113e+21"},
		{"123456789*1000", "123456789000"},
		{"-10/4", "-2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.input))
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"2+",
		"*3",
		"abc",
		"sin",
		"sin()",
		"Sin(0)",
		"(2+3)!",
		"5.5!",
		"2 3",
		"1.2.3",
		"()",
		"2+3)",
		"0/0",
		"ln(0)",
		"asin(2)",
		"√(-1)",
		"171!",
		"10^400",
		"√16",
		"1,5",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, ErrorResult, Evaluate(input))
		})
	}
}

func TestEval_TypedErrors(t *testing.T) {
	_, err := Eval("2+")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Eval("")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Eval("foo(1)")
	assert.ErrorIs(t, err, ErrUnknownIdent)

	_, err = Eval("y+1")
	assert.ErrorIs(t, err, ErrUnknownIdent)

	_, err = Eval("1/0")
	assert.ErrorIs(t, err, ErrDomain)
	assert.Contains(t, err.Error(), "Infinity")

	v, err := Eval("6×7")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestEval_IntermediateInfinity(t *testing.T) {
	// Only the final value must be finite.
	assert.Equal(t, "0", Evaluate("1/(1/0)"))
}

func TestFormatResult_IntegerRoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, 42, -1234567, 9007199254740992, 1e20, -3e15}
	for _, v := range values {
		s := FormatResult(v)
		got, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, "FormatResult(%v) = %q", v, s)
		assert.Equal(t, v, got)
		assert.NotContains(t, s, ".")
	}
}

func TestFormatResult_NonFinite(t *testing.T) {
	assert.Equal(t, ErrorResult, FormatResult(math.Inf(1)))
	assert.Equal(t, ErrorResult, FormatResult(math.NaN()))
}

func TestCompile(t *testing.T) {
	prog, err := Compile("2×x^2 + 1", "X")
	require.NoError(t, err)
	assert.Equal(t, "x", prog.Variable())
	assert.Equal(t, "2*x**2 + 1", prog.Canonical())

	y, err := prog.Eval(3)
	require.NoError(t, err)
	assert.Equal(t, 19.0, y)

	_, err = Compile("x+1", "")
	assert.ErrorIs(t, err, ErrUnknownIdent)

	_, err = Compile("3x", "x")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCompile_MatchesTextualBinding(t *testing.T) {
	exprs := []string{"x^2", "-x^2", "2*x+1", "1/x", "exp(x)", "x mod 3", "√(x)", "x*(x-1)", "sin(x)×π"}
	values := []float64{-2.5, -1, 0, 0.5, 3, 7.25}

	for _, bad := range []string{"2x+1", "x(x-1)", "sin(x)π"} {
		_, err := Compile(bad, "x")
		assert.Error(t, err, bad)
		for _, v := range values {
			_, err := Eval(Bind(bad, "x", v))
			assert.Error(t, err, "%s at %v", bad, v)
		}
	}

	for _, expr := range exprs {
		prog, err := Compile(expr, "x")
		require.NoError(t, err, expr)
		for _, v := range values {
			want, wantErr := Eval(Bind(expr, "x", v))
			got, gotErr := prog.Eval(v)
			if wantErr != nil {
				assert.Error(t, gotErr, "%s at %v", expr, v)
				continue
			}
			require.NoError(t, gotErr, "%s at %v", expr, v)
			assert.Equal(t, want, got, "%s at %v", expr, v)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	for _, expr := range []string{"2π", "sin(1)", "1/3", "5!", "bogus"} {
		first := Evaluate(expr)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Evaluate(expr))
		}
	}
}

func TestFunctions(t *testing.T) {
	names := Functions()
	assert.Len(t, names, len(builtins))
	assert.Contains(t, names, "log10")
	assert.IsIncreasing(t, names)
}
