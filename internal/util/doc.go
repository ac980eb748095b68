// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the typebuddy packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: Same, with explicit directory permissions
//
// Display Width:
//   - StringWidth: Terminal cell width (wide runes count as 2)
//   - TruncateWidth: Cut a string to a cell width with an ellipsis
//   - PadRight: Pad a string to a cell width
//   - Center: Center a string within a cell width
//   - DropLastRune: Backspace one character without splitting UTF-8
//
// # Usage
//
//	// Persist preferences without leaving a half-written file behind
//	err := util.AtomicWriteFile(path, data, 0600)
//
//	// Align the keypad reference table
//	cell := util.PadRight("√", 4)
package util
