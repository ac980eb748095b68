// typebuddy - Word suggestions and a scientific calculator for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/typebuddy/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdPad:
		err = cli.HandlePad(args)
	case cli.CmdEval:
		err = cli.HandleEval(args)
	case cli.CmdGraph:
		err = cli.HandleGraph(args)
	case cli.CmdCalc:
		err = cli.HandleCalc(args)
	case cli.CmdSuggest:
		err = cli.HandleSuggest(args)
	case cli.CmdKeys:
		err = cli.HandleKeys(args)
	case cli.CmdPrefs:
		err = cli.HandlePrefs(args)
	case cli.CmdHistory:
		err = cli.HandleHistory(args)
	case cli.CmdNotes:
		err = cli.HandleNotes(args)
	case cli.CmdServe:
		err = cli.HandleServe(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	case cli.CmdHelp:
		err = cli.HandleHelp()
	default:
		err = cli.HandleUnknown(args)
	}

	if err != nil {
		if !cli.IsReported(err) {
			cli.DisplayError(err, args.JSON)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
