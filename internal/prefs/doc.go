// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs stores the pad's user preferences.
//
// Preferences cover the on-screen keyboard (layout, sizes, spacing, custom
// key orders and per-key sizes), colours, the profile shown on the home
// screen, voice and metronome settings, and an optional caregiver PIN that
// guards changes.
//
// The document is a versioned JSON file. Older documents are upgraded by an
// ordered list of migrations when loaded, so every version bump is an
// explicit function instead of scattered field checks.
//
// # Key Types
//
//   - Preferences: The persisted document
//   - Store: Loads, validates, saves and watches the document
//   - Color: An entry of one of the colour palettes
//
// # Usage
//
//	store := prefs.NewStore(prefs.DefaultPath(dataDir))
//	if err := store.Load(); err != nil {
//	    log.Printf("PREFS_LOAD_FAILED | error=%v", err)
//	}
//	_ = store.SetKeyboardLayout(prefs.LayoutQwerty)
//	keys := store.Get().Layout(prefs.LayoutQwerty)
package prefs
