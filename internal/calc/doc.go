// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calc implements the TypeBuddy calculator core.
//
// Calculator input is written the way it appears on the keypad: unicode
// operators (×, ÷), radicals (√(, ∛(), constants (π, e), named functions,
// factorials (5!) and "mod". Everything goes through one pipeline:
//
//  1. Normalize rewrites keypad notation into canonical arithmetic text in a
//     single tokenizer pass and closes unbalanced parentheses.
//  2. A recursive-descent parser turns canonical text into an AST.
//  3. A tree walk evaluates the AST with float64 arithmetic.
//
// # Key Types
//
//   - Program: A compiled expression, optionally with one bound variable
//   - Point: One (x, y) sample of a curve
//   - Keypad: An expression buffer driven by calculator button labels
//
// # Usage
//
//	calc.EvaluateExpression("√(16)")          // "4"
//	calc.EvaluateExpression("1/0")            // "Error"
//	pts := calc.Sample("x^2", "x", -2, 2, 4)  // 5 points
//
// Failures never cross the string API: any syntax error, unknown name or
// non-finite value becomes the sentinel "Error" (or a dropped sample when
// graphing). Eval and Program.Eval return the typed error for callers that
// want to explain what went wrong.
//
// All functions are pure and safe for concurrent use.
package calc
