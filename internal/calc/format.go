// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import (
	"math"
	"strconv"
	"strings"
)

// SignificantDigits is the precision non-integer results are rounded to.
const SignificantDigits = 10

// FormatResult renders a finite value for display.
//
// Integers print without a decimal point ("4", never "4.0" or "-0").
// Other values are rounded to SignificantDigits significant digits and
// printed in their shortest form with trailing zeros dropped. Magnitudes
// below 1e-6 or from 1e21 up use exponent notation ("1.5e-7", "1e+21").
// Non-finite values format as ErrorResult.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorResult
	}
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return shortest(v)
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', SignificantDigits, 64), 64)
	if err != nil {
		return ErrorResult
	}
	if rounded == 0 {
		return "0"
	}
	return shortest(rounded)
}

// shortest prints v in decimal for 1e-6 <= |v| < 1e21 and in exponent form
// otherwise, with no padding zeros in the exponent.
func shortest(v float64) string {
	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
