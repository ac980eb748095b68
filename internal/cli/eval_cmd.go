// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// eval_cmd.go - Eval command implementation for typebuddy.
//
// Command: eval <expression>
// Short:   Evaluate a calculator expression
// Aliases: e, =  (a bare expression also works: typebuddy 2+2)
//
// Examples:
//   typebuddy eval "2+3×4"             14
//   typebuddy eval "√(16)+2²"          8
//   typebuddy eval 5! --canonical      5! = 120  (canonical shown)
//   typebuddy eval -- -2^2             Expressions starting with '-'
//   typebuddy eval "1/0" --json        success=false, result "Error"
//
// Flags:
//   --canonical         Show the normalized expression as well
//   --no-history        Do not record the calculation
//   --json              Output in JSON format
package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/storage"
)

// HandleEval handles the "eval" command.
func HandleEval(args Args) error {
	p := NewArgParser(args.Raw)
	expr, err := expressionArg(p, 0, `typebuddy eval "2+3×4"`)
	if err != nil {
		return err
	}

	canonical, value, evalErr := evaluate(expr)
	result := calc.ErrorResult
	if evalErr == nil {
		result = calc.FormatResult(value)
	}

	if !p.BoolFlag("no-history") {
		recordHistory(loadConfig(), expr, canonical, result, storage.ModeEval)
	}

	data := EvalData{Expression: expr, Canonical: canonical, Result: result}
	if evalErr != nil {
		err := NewCommandError("eval", "evaluate", "expression could not be evaluated", evalErr)
		if args.JSON {
			NewJSONErrorResponse("eval", err, data).Print()
			return &reportedError{err}
		}
		fmt.Fprintln(stdout, ErrorStyle.Render(result))
		return err
	}

	if args.JSON {
		data.Value = &value
		return printJSON("eval", data)
	}

	if p.BoolFlag("canonical") || args.Verbose {
		fmt.Fprintf(stdout, "%s = %s\n", highlight(canonical), ResultStyle.Render(result))
		return nil
	}
	fmt.Fprintln(stdout, ResultStyle.Render(result))
	return nil
}

// reportedError marks an error whose JSON document was already written,
// so main only maps it to an exit code.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already written to the output.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
