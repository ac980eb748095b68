// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for typebuddy.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CalculatorConfig: Graph sampling defaults
//   - ServerConfig: Listen address and rate limits for the HTTP API
//   - HistoryConfig: Calculation history retention
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TYPEBUDDY_*)
//   - ~/.typebuddy/config.toml
//   - ~/.typebuddy/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("CONFIG_LOAD_FAILED | error=%v", err)
//	}
//
// Access settings:
//
//	points := cfg.Calculator.GraphPoints
//	addr := cfg.Addr()
package config
