// json_output.go - JSON output support for scripting typebuddy.
//
// Every command accepts --json and then writes one JSONResponse document
// to stdout. Human-readable messages go to stderr in that mode.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/prefs"
	"github.com/jeranaias/typebuddy/internal/storage"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response. data may carry
// partial results (an evaluation that failed still has a canonical form).
func NewJSONErrorResponse(command string, err error, data interface{}) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      data,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// printJSON writes a successful response for command.
func printJSON(command string, data interface{}) error {
	return NewJSONResponse(command, data).Print()
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// EvalData is returned by the eval command.
type EvalData struct {
	Expression string   `json:"expression"`
	Canonical  string   `json:"canonical"`
	Result     string   `json:"result"`
	Value      *float64 `json:"value,omitempty"`
}

// GraphData is returned by the graph command.
type GraphData struct {
	Expression string       `json:"expression"`
	Canonical  string       `json:"canonical"`
	Variable   string       `json:"variable"`
	XMin       float64      `json:"x_min"`
	XMax       float64      `json:"x_max"`
	Points     []calc.Point `json:"points"`
	Count      int          `json:"count"`
}

// SuggestData is returned by the suggest command.
type SuggestData struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
}

// KeysData is returned by the keys command.
type KeysData struct {
	Basic      [][]string `json:"basic"`
	Scientific [][]string `json:"scientific"`
	Advanced   [][]string `json:"advanced"`
	Functions  []string   `json:"functions"`
}

// PrefsData is returned by the prefs command. The PIN hash is never
// included.
type PrefsData struct {
	Path        string            `json:"path"`
	Locked      bool              `json:"locked"`
	Preferences prefs.Preferences `json:"preferences"`
}

// HistoryData is returned by the history command.
type HistoryData struct {
	Entries []storage.Entry `json:"entries"`
	Count   int             `json:"count"`
	Removed int64           `json:"removed,omitempty"`
}

// NotesData is returned by the notes list command.
type NotesData struct {
	Notes []storage.Note `json:"notes"`
	Count int            `json:"count"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
