// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// graph_cmd.go - Graph command implementation for typebuddy.
//
// Command: graph <expression>
// Short:   Plot an expression of one variable
// Aliases: plot
//
// Examples:
//   typebuddy graph "x^2"                       Parabola over the config domain
//   typebuddy graph "sin(x)" --from -6 --to 6
//   typebuddy graph "2×t+1" --var t --points 20
//   typebuddy graph "x^3" --json                Sampled points as JSON
//
// Flags:
//   --from N            Start of the x range (default: calculator.x_min)
//   --to N              End of the x range (default: calculator.x_max)
//   --points N          Sampling intervals (default: calculator.graph_points)
//   --var X             Variable letter (default: calculator.variable)
//   --width N           Plot width in cells (default: terminal width)
//   --height N          Plot height in cells
//   --no-history        Do not record the graph
//   --json              Output in JSON format
package cli

import (
	"fmt"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/ui/plot"
)

// graphRequest holds the validated graph flags.
type graphRequest struct {
	expr     string
	variable string
	xMin     float64
	xMax     float64
	points   int
	width    int
	height   int
}

func parseGraphArgs(p *ArgParser) (graphRequest, error) {
	cfg := loadConfig()
	var req graphRequest
	var err error

	if req.expr, err = expressionArg(p, 0, `typebuddy graph "x^2" --from -3 --to 3`); err != nil {
		return req, err
	}
	if req.xMin, err = p.FlagFloatOrDefault("from", cfg.Calculator.XMin); err != nil {
		return req, err
	}
	if req.xMax, err = p.FlagFloatOrDefault("to", cfg.Calculator.XMax); err != nil {
		return req, err
	}
	if req.xMin >= req.xMax {
		return req, NewValidationErrorWithExample("range", fmt.Sprintf("%g..%g", req.xMin, req.xMax),
			"--from must be less than --to", "--from -10 --to 10")
	}
	if req.points, err = p.FlagIntOrDefault("points", cfg.Calculator.GraphPoints); err != nil {
		return req, err
	}
	if req.points < 1 || req.points > calc.MaxGraphPoints {
		return req, NewValidationError("points", fmt.Sprint(req.points),
			fmt.Sprintf("must be between 1 and %d", calc.MaxGraphPoints))
	}

	req.variable = p.FlagOrDefault("var", cfg.Calculator.Variable)
	if !calc.ValidVariable(req.variable) {
		return req, NewValidationErrorWithExample("var", req.variable, "must be a single letter", "--var t")
	}

	width, height := GetTerminalSize()
	if req.width, err = p.FlagIntOrDefault("width", width-12); err != nil {
		return req, err
	}
	if req.height, err = p.FlagIntOrDefault("height", plot.DefaultHeight); err != nil {
		return req, err
	}
	if req.height > height-4 && !p.HasFlag("height") && height-4 >= plot.MinHeight {
		req.height = height - 4
	}
	return req, nil
}

// HandleGraph handles the "graph" command.
func HandleGraph(args Args) error {
	p := NewArgParser(args.Raw)
	req, err := parseGraphArgs(p)
	if err != nil {
		return err
	}

	prog, err := calc.Compile(req.expr, req.variable)
	if err != nil {
		return NewCommandError("graph", "compile", "expression could not be parsed", err)
	}
	points := prog.Sample(req.xMin, req.xMax, req.points)

	if !p.BoolFlag("no-history") {
		result := fmt.Sprintf("%d points", len(points))
		recordHistory(loadConfig(), req.expr, prog.Canonical(), result, storage.ModeGraph)
	}

	if args.JSON {
		return printJSON("graph", GraphData{
			Expression: req.expr,
			Canonical:  prog.Canonical(),
			Variable:   prog.Variable(),
			XMin:       req.xMin,
			XMax:       req.xMax,
			Points:     points,
			Count:      len(points),
		})
	}

	if !args.Quiet {
		fmt.Fprintf(stdout, "%s  %s\n\n", TitleStyle.Render("y ="), highlight(prog.Canonical()))
	}
	if len(points) == 0 {
		fmt.Fprintln(stdout, WarningStyle.Render("No finite points in range."))
		return nil
	}

	chart := plot.Render(points, plot.Options{
		Width:  req.width,
		Height: req.height,
		XMin:   req.xMin,
		XMax:   req.xMax,
	})
	fmt.Fprintln(stdout, chart)
	if args.Verbose {
		fmt.Fprintln(stdout, DimStyle.Render(fmt.Sprintf("%d of %d samples plotted", len(points), req.points+1)))
	}
	return nil
}
