// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plot draws sampled curves as ASCII art for the terminal.
//
// The canvas is a grid of cells: '*' marks a sample, '-' and '|' are the
// axes where y = 0 and x = 0 fall inside the drawn range, '+' is the
// origin. The y range is taken from the samples; labels are formatted
// with calc.FormatResult and padded by display width.
package plot

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/typebuddy/internal/calc"
)

const (
	// MinWidth and MinHeight bound the canvas (labels excluded).
	MinWidth  = 10
	MinHeight = 5

	DefaultWidth  = 60
	DefaultHeight = 15
)

// Cell glyphs.
const (
	glyphPoint  = '*'
	glyphXAxis  = '-'
	glyphYAxis  = '|'
	glyphOrigin = '+'
)

// Options size the canvas and fix the x range. A zero XMin/XMax pair takes
// the range of the samples.
type Options struct {
	Width  int
	Height int
	XMin   float64
	XMax   float64
}

// Bounds is the value range covered by a canvas.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Range returns the bounds of points. A flat curve is widened by one unit
// each way so it draws across the middle row.
func Range(points []calc.Point) Bounds {
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for _, p := range points {
		b.XMin = math.Min(b.XMin, p.X)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	if b.YMin == b.YMax {
		b.YMin--
		b.YMax++
	}
	if b.XMin == b.XMax {
		b.XMin--
		b.XMax++
	}
	return b
}

// Render draws points on a canvas and returns it as newline-separated
// rows with a y label column on the left and an x label row underneath.
// It returns "" when there are no points.
func Render(points []calc.Point, opts Options) string {
	if len(points) == 0 {
		return ""
	}
	width, height := clampSize(opts.Width, opts.Height)

	b := Range(points)
	if opts.XMin < opts.XMax {
		b.XMin, b.XMax = opts.XMin, opts.XMax
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	axisRow, hasXAxis := b.row(0, height)
	axisCol, hasYAxis := b.col(0, width)
	if hasXAxis {
		for c := range grid[axisRow] {
			grid[axisRow][c] = glyphXAxis
		}
	}
	if hasYAxis {
		for r := range grid {
			if hasXAxis && r == axisRow {
				grid[r][axisCol] = glyphOrigin
				continue
			}
			grid[r][axisCol] = glyphYAxis
		}
	}

	for _, p := range points {
		c, okX := b.col(p.X, width)
		r, okY := b.row(p.Y, height)
		if okX && okY {
			grid[r][c] = glyphPoint
		}
	}

	top := calc.FormatResult(b.YMax)
	bottom := calc.FormatResult(b.YMin)
	labelWidth := max(runewidth.StringWidth(top), runewidth.StringWidth(bottom))

	var sb strings.Builder
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		sb.WriteString(runewidth.FillLeft(label, labelWidth))
		sb.WriteString(" ")
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}

	left := calc.FormatResult(b.XMin)
	right := calc.FormatResult(b.XMax)
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	sb.WriteString(strings.Repeat(" ", labelWidth+1))
	sb.WriteString(left)
	sb.WriteString(strings.Repeat(" ", gap))
	sb.WriteString(right)
	return sb.String()
}

func clampSize(width, height int) (int, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return max(width, MinWidth), max(height, MinHeight)
}

// col maps x to a canvas column.
func (b Bounds) col(x float64, width int) (int, bool) {
	if x < b.XMin || x > b.XMax {
		return 0, false
	}
	return int(math.Round((x - b.XMin) / (b.XMax - b.XMin) * float64(width-1))), true
}

// row maps y to a canvas row, row 0 being the top.
func (b Bounds) row(y float64, height int) (int, bool) {
	if y < b.YMin || y > b.YMax {
		return 0, false
	}
	return int(math.Round((b.YMax - y) / (b.YMax - b.YMin) * float64(height-1))), true
}
