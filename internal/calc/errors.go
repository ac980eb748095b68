// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import "errors"

// ErrorResult is the sentinel returned by the string API for any
// expression that cannot be evaluated.
const ErrorResult = "Error"

var (
	// ErrSyntax reports malformed input: stray operators, missing operands,
	// bad numbers, calls with the wrong number of arguments.
	ErrSyntax = errors.New("calc: syntax error")

	// ErrUnknownIdent reports a name that is neither a built-in function nor
	// the bound variable.
	ErrUnknownIdent = errors.New("calc: unknown identifier")

	// ErrDomain reports a result that is infinite or NaN.
	ErrDomain = errors.New("calc: result is not a finite number")
)
