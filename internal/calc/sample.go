// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calc

import "math"

// MaxMagnitude is the exclusive ceiling on |y| for a plotted point.
const MaxMagnitude = 1_000_000

// Point is one sample of a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample evaluates expression across [xMin, xMax] with variable bound to
// count+1 evenly spaced x values, endpoints included.
//
// A sample is kept only when y is finite and |y| < MaxMagnitude; failing
// samples leave a gap and never abort the series. Returned points have
// strictly increasing x within the domain.
//
// Degenerate input:
//   - count <= 0 or xMin == xMax samples xMin once
//   - count above MaxGraphPoints is clamped to MaxGraphPoints
//   - xMin > xMax is swapped
//   - non-finite bounds, a variable that is not a single letter, or an
//     expression that does not parse give an empty series
func Sample(expression, variable string, xMin, xMax float64, count int) []Point {
	if !validVariable(variable) || !finite(xMin) || !finite(xMax) {
		return []Point{}
	}
	prog, err := Compile(expression, variable)
	if err != nil {
		return []Point{}
	}
	return prog.Sample(xMin, xMax, count)
}

// Sample evaluates a compiled program across [xMin, xMax]; see Sample.
func (p *Program) Sample(xMin, xMax float64, count int) []Point {
	if !finite(xMin) || !finite(xMax) {
		return []Point{}
	}
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	if count <= 0 || xMin == xMax {
		if pt, ok := p.point(xMin); ok {
			return []Point{pt}
		}
		return []Point{}
	}
	if count > MaxGraphPoints {
		count = MaxGraphPoints
	}

	step := (xMax - xMin) / float64(count)
	points := make([]Point, 0, count+1)
	last := math.Inf(-1)
	for i := 0; i <= count; i++ {
		x := xMin + float64(i)*step
		if i == count || x > xMax {
			x = xMax
		}
		// Float rounding on huge bounds can repeat an x; keep the first.
		if x <= last {
			continue
		}
		last = x
		if pt, ok := p.point(x); ok {
			points = append(points, pt)
		}
	}
	return points
}

func (p *Program) point(x float64) (Point, bool) {
	y, err := p.Eval(x)
	if err != nil || math.Abs(y) >= MaxMagnitude {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
