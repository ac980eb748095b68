// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

// DefaultGraphPoints is the number of intervals GraphPoints samples when
// the caller does not choose one.
const DefaultGraphPoints = 100

// MaxGraphPoints bounds the sample count accepted from untrusted callers
// (HTTP API, config files).
const MaxGraphPoints = 10_000

// GraphVariable is the variable bound when graphing.
const GraphVariable = "x"

// EvaluateExpression is the "=" action: it returns the formatted result of
// expression or "Error".
func EvaluateExpression(expression string) string {
	return Evaluate(expression)
}

// GenerateGraphPoints samples expression in x over [xMin, xMax] using
// numPoints intervals.
func GenerateGraphPoints(expression string, xMin, xMax float64, numPoints int) []Point {
	return Sample(expression, GraphVariable, xMin, xMax, numPoints)
}

// GraphPoints is GenerateGraphPoints with DefaultGraphPoints used for a
// non-positive count.
func GraphPoints(expression string, xMin, xMax float64, numPoints int) []Point {
	if numPoints <= 0 {
		numPoints = DefaultGraphPoints
	}
	return GenerateGraphPoints(expression, xMin, xMax, numPoints)
}

// MentionsVariable reports whether expression contains variable as a
// lexeme, which is when a graph view has something to plot.
func MentionsVariable(expression, variable string) bool {
	if !validVariable(variable) {
		return false
	}
	return normalize(expression, &binding{name: variable, render: "\x00"}) != Normalize(expression)
}
