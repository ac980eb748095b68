// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for typebuddy.
//
// Command: config [subcommand]
// Short:   View and modify configuration
// Aliases: (none)
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Print one value
//   set <key> <value>   Set a configuration value
//   keys                List configuration keys
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   typebuddy config
//   typebuddy config set calculator.x_min -5
//   typebuddy config set server.port 9000
//   typebuddy config set history.enabled false
//   typebuddy config get suggest.max
//   typebuddy config reset --confirm
//
// Flags:
//   --confirm           Skip the confirmation prompt for reset
//   --json              Output in JSON format
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/typebuddy/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		return handleConfigShow(args)
	case "get":
		return handleConfigGet(args)
	case "set":
		return handleConfigSet(args)
	case "keys":
		if args.JSON {
			return printJSON("config keys", map[string][]string{"keys": config.GetAllKeys()})
		}
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(stdout, k)
		}
		return nil
	case "reset":
		return handleConfigReset(args)
	case "path":
		return handleConfigPath(args)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand, "unknown config subcommand",
			"typebuddy config [show|get|set|keys|reset|path]")
	}
}

// configPath returns the TOML path, or "" when the home directory is unknown.
func configPath() string {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	return path
}

func handleConfigShow(args Args) error {
	cfg := loadConfig()
	if args.JSON {
		return printJSON("config show", map[string]interface{}{
			"path":   configPath(),
			"config": cfg,
		})
	}

	fmt.Fprintln(stdout, TitleStyle.Render("typebuddy Configuration"))
	fmt.Fprintln(stdout, RenderSeparator())
	section := ""
	for _, key := range config.GetAllKeys() {
		if s, _, ok := strings.Cut(key, "."); ok && s != section {
			section = s
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, SectionStyle.Render("["+section+"]"))
		}
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintln(stdout, RenderField("  "+key, fmt.Sprint(value)))
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, RenderSeparator())
	fmt.Fprintf(stdout, "Config file: %s\n", DimStyle.Render(configPath()))
	return nil
}

func handleConfigGet(args Args) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "typebuddy config get server.port")
	}
	value, err := loadConfig().Get(args.ConfigKey)
	if err != nil {
		return NewValidationErrorWithExample("key", args.ConfigKey, err.Error(), "typebuddy config keys")
	}
	if args.JSON {
		return printJSON("config get", map[string]interface{}{"key": args.ConfigKey, "value": value})
	}
	fmt.Fprintln(stdout, value)
	return nil
}

func handleConfigSet(args Args) error {
	key, value := args.ConfigKey, args.ConfigVal
	if key == "" || value == "" {
		return ErrMissingArgument("key and value", "typebuddy config set calculator.x_max 20")
	}
	key = strings.ToLower(key)

	// Start from a fresh read of the file rather than the process config.
	cfg, err := config.Load()
	if cfg == nil {
		return NewCommandError("config", "set", "could not load configuration", err)
	}
	if err := cfg.Set(key, value); err != nil {
		return NewValidationErrorWithExample("key", key, err.Error(), "typebuddy config keys")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "set", "could not save configuration", err)
	}
	if err := config.ReloadGlobal(); err != nil {
		config.SetGlobal(cfg)
	}

	if args.JSON {
		return printJSON("config set", map[string]string{"key": key, "value": value})
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s %s = %s\n", SuccessStyle.Render("✓"), key, value)
	}
	return nil
}

func handleConfigReset(args Args) error {
	p := NewArgParser(args.Raw)
	confirmed, err := RequireConfirmation(p.BoolFlag("confirm"), "reset configuration to defaults", args.JSON)
	if err != nil {
		return err
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}

	cfg := config.Default()
	cfg.SetDefaults()
	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "reset", "could not save configuration", err)
	}
	config.SetGlobal(cfg)

	if args.JSON {
		return printJSON("config reset", map[string]string{"path": configPath()})
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s Configuration reset to defaults\n", SuccessStyle.Render("✓"))
	}
	return nil
}

func handleConfigPath(args Args) error {
	path := configPath()
	if args.JSON {
		_, err := os.Stat(path)
		return printJSON("config path", map[string]interface{}{
			"path":   path,
			"exists": err == nil,
		})
	}
	fmt.Fprintln(stdout, path)
	return nil
}
