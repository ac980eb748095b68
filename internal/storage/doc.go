// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists calculation history and saved notes for typebuddy.
//
// Everything lives in one SQLite database (pure Go driver, no cgo) inside
// the data directory. History is pruned to a configurable number of
// entries; notes are identified by random UUIDs.
//
// # Key Types
//
//   - Store: The open database
//   - Entry: One recorded calculation
//   - Note: A piece of typed text kept for later
//
// # Usage
//
//	store, err := storage.Open(cfg.HistoryPath())
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	store.SetMaxEntries(cfg.History.MaxEntries)
//	_, err = store.Record(ctx, storage.Entry{Expression: "2+2", Result: "4"})
//	recent, err := store.Recent(ctx, 10)
//
// # Storage Location
//
// The database is ~/.typebuddy/typebuddy.db unless data_dir says otherwise.
package storage
