// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/util"
)

// CurrentVersion is the config format written by this build.
const CurrentVersion = "2"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete typebuddy configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`
	DataDir string `toml:"data_dir" json:"data_dir"`

	Calculator CalculatorConfig `toml:"calculator" json:"calculator"`
	Suggest    SuggestConfig    `toml:"suggest" json:"suggest"`
	Server     ServerConfig     `toml:"server" json:"server"`
	UI         UIConfig         `toml:"ui" json:"ui"`
	History    HistoryConfig    `toml:"history" json:"history"`
}

// CalculatorConfig controls evaluation and graphing defaults.
type CalculatorConfig struct {
	// GraphPoints is the number of sampling intervals for a graph.
	GraphPoints int `toml:"graph_points" json:"graph_points"`

	// XMin and XMax are the default graph domain.
	XMin float64 `toml:"x_min" json:"x_min"`
	XMax float64 `toml:"x_max" json:"x_max"`

	// Variable is the name bound when graphing.
	Variable string `toml:"variable" json:"variable"`
}

// SuggestConfig controls word suggestions.
type SuggestConfig struct {
	Max int `toml:"max" json:"max"`

	// LexiconPath points at a YAML word list replacing the built-in one.
	LexiconPath string `toml:"lexicon_path" json:"lexicon_path"`
}

// ServerConfig controls the local HTTP API.
type ServerConfig struct {
	Host string `toml:"host" json:"host"`
	Port int    `toml:"port" json:"port"`

	// RateLimitPerMinute is the per-client request budget. 0 disables limiting.
	RateLimitPerMinute int `toml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
	RateBurst          int `toml:"rate_burst" json:"rate_burst"`
}

// UIConfig controls the terminal pad.
type UIConfig struct {
	Theme     string `toml:"theme" json:"theme"` // "auto", "dark", "light"
	ShowGraph bool   `toml:"show_graph" json:"show_graph"`
}

// HistoryConfig controls calculation history.
type HistoryConfig struct {
	Enabled    bool `toml:"enabled" json:"enabled"`
	MaxEntries int  `toml:"max_entries" json:"max_entries"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,

		Calculator: CalculatorConfig{
			GraphPoints: calc.DefaultGraphPoints,
			XMin:        -10,
			XMax:        10,
			Variable:    calc.GraphVariable,
		},

		Suggest: SuggestConfig{
			Max: 5,
		},

		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               8787,
			RateLimitPerMinute: 120,
			RateBurst:          20,
		},

		UI: UIConfig{
			Theme:     "auto",
			ShowGraph: true,
		},

		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 500,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the typebuddy configuration directory path.
// TYPEBUDDY_HOME replaces ~/.typebuddy when set.
func ConfigDir() (string, error) {
	if dir := os.Getenv("TYPEBUDDY_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".typebuddy"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
				cfg = Default()
			} else {
				return finish(cfg)
			}
		}
	}

	// Try JSON as fallback
	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
				cfg = Default()
			} else {
				return finish(cfg)
			}
		}
	}

	// Defaults (with any load error for informational purposes)
	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finish applies env overrides, migration, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file over the values in cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON loads configuration from a JSON file over the values in cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file, or to config.json
// when that is the only config file present.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if jsonPath, err := ConfigPathJSON(); err == nil {
			if _, err := os.Stat(jsonPath); err == nil {
				return SaveJSON(cfg, jsonPath)
			}
		}
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// RELIABILITY: Encoded in memory first, then written atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# typebuddy configuration file\n")
	buf.WriteString("# Generated by typebuddy - edit with care\n")
	buf.WriteString("#\n")
	buf.WriteString("# Documentation: https://github.com/jeranaias/typebuddy\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// SECURITY: Write with restrictive permissions (0600 = owner read/write only)
	if err := util.AtomicWriteFileWithDir(path, []byte(buf.String()), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// validThemes lists the accepted ui.theme values.
var validThemes = map[string]bool{"auto": true, "dark": true, "light": true}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Calculator
	if c.Calculator.GraphPoints < 1 || c.Calculator.GraphPoints > calc.MaxGraphPoints {
		add("calculator.graph_points", "must be between 1 and %d, got %d", calc.MaxGraphPoints, c.Calculator.GraphPoints)
	}
	if !finite(c.Calculator.XMin) || !finite(c.Calculator.XMax) {
		add("calculator.x_min", "graph bounds must be finite")
	} else if c.Calculator.XMin >= c.Calculator.XMax {
		add("calculator.x_min", "must be less than x_max (%g >= %g)", c.Calculator.XMin, c.Calculator.XMax)
	}
	if !calc.ValidVariable(c.Calculator.Variable) {
		add("calculator.variable", "%q is not a valid variable name", c.Calculator.Variable)
	}

	// Suggest
	if c.Suggest.Max < 1 || c.Suggest.Max > 20 {
		add("suggest.max", "must be between 1 and 20, got %d", c.Suggest.Max)
	}
	if c.Suggest.LexiconPath != "" {
		if _, err := os.Stat(c.Suggest.LexiconPath); err != nil {
			add("suggest.lexicon_path", "cannot read %s: %v", c.Suggest.LexiconPath, err)
		}
	}

	// Server
	if strings.TrimSpace(c.Server.Host) == "" {
		add("server.host", "must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		add("server.rate_limit_per_minute", "must not be negative, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Server.RateLimitPerMinute > 0 && c.Server.RateBurst < 1 {
		add("server.rate_burst", "must be at least 1 when rate limiting is on, got %d", c.Server.RateBurst)
	}

	// UI
	if !validThemes[c.UI.Theme] {
		add("ui.theme", "must be one of auto, dark, light, got %q", c.UI.Theme)
	}

	// History
	if c.History.MaxEntries < 1 {
		add("history.max_entries", "must be at least 1, got %d", c.History.MaxEntries)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.DataDir == "" {
		if dir, err := ConfigDir(); err == nil {
			c.DataDir = dir
		} else {
			c.DataDir = ".typebuddy"
		}
	}

	if c.Calculator.GraphPoints == 0 {
		c.Calculator.GraphPoints = defaults.Calculator.GraphPoints
	}
	if c.Calculator.XMin == 0 && c.Calculator.XMax == 0 {
		c.Calculator.XMin = defaults.Calculator.XMin
		c.Calculator.XMax = defaults.Calculator.XMax
	}
	if c.Calculator.Variable == "" {
		c.Calculator.Variable = defaults.Calculator.Variable
	}

	if c.Suggest.Max == 0 {
		c.Suggest.Max = defaults.Suggest.Max
	}

	if c.Server.Host == "" {
		c.Server.Host = defaults.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.RateLimitPerMinute > 0 && c.Server.RateBurst == 0 {
		c.Server.RateBurst = defaults.Server.RateBurst
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
}

// Migrate handles migration from old configuration formats to new ones.
//
// Version 1 files used the theme names "system" and "default"; both mean
// "auto" now.
func (c *Config) Migrate() error {
	switch strings.ToLower(c.UI.Theme) {
	case "system", "default":
		c.UI.Theme = "auto"
	default:
		c.UI.Theme = strings.ToLower(c.UI.Theme)
	}

	if c.Version == "1" || c.Version == "1.0.0" {
		c.Version = CurrentVersion
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TYPEBUDDY_DATA_DIR: overrides data_dir
//   - TYPEBUDDY_PORT: overrides server.port
//   - TYPEBUDDY_GRAPH_POINTS: overrides calculator.graph_points
//   - TYPEBUDDY_SUGGEST_MAX: overrides suggest.max
//   - TYPEBUDDY_THEME: overrides ui.theme
//   - TYPEBUDDY_HISTORY: set to "0" or "false" to disable history
//
// Malformed numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("TYPEBUDDY_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}

	if port := os.Getenv("TYPEBUDDY_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Server.Port = n
		}
	}

	if points := os.Getenv("TYPEBUDDY_GRAPH_POINTS"); points != "" {
		if n, err := strconv.Atoi(points); err == nil {
			c.Calculator.GraphPoints = n
		}
	}

	if max := os.Getenv("TYPEBUDDY_SUGGEST_MAX"); max != "" {
		if n, err := strconv.Atoi(max); err == nil {
			c.Suggest.Max = n
		}
	}

	if theme := os.Getenv("TYPEBUDDY_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if history := os.Getenv("TYPEBUDDY_HISTORY"); history != "" {
		c.History.Enabled = parseBool(history)
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "server.port").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "calculator.graph_points").
// The result is not validated; call Validate before saving.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks key through nested structs.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(part[:1]))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"data_dir",
		"calculator.graph_points",
		"calculator.x_min",
		"calculator.x_max",
		"calculator.variable",
		"suggest.max",
		"suggest.lexicon_path",
		"server.host",
		"server.port",
		"server.rate_limit_per_minute",
		"server.rate_burst",
		"ui.theme",
		"ui.show_graph",
		"history.enabled",
		"history.max_entries",
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a copy of the configuration. Config holds no maps or
// slices, so a value copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// HistoryPath returns the SQLite database path inside the data directory.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "typebuddy.db")
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if cfg == nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.SetDefaults()
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if cfg == nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return err
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
