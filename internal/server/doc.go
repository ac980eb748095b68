// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the calculator, word suggestions, preferences,
// notes and history over a local JSON HTTP API.
//
// # Endpoints
//
//   - POST   /v1/evaluate      - Evaluate an expression
//   - POST   /v1/graph         - Sample an expression across an x range
//   - POST   /v1/suggest       - Word suggestions for typed text
//   - GET    /v1/preferences   - Current preferences (PIN hash stripped)
//   - PUT    /v1/preferences   - Merge a partial document (X-TypeBuddy-Pin when locked)
//   - GET    /v1/notes         - List notes, newest first
//   - POST   /v1/notes         - Create a note
//   - GET    /v1/notes/{id}    - Fetch a note
//   - PUT    /v1/notes/{id}    - Replace a note
//   - DELETE /v1/notes/{id}    - Delete a note
//   - GET    /v1/history       - Recent calculations (?limit=)
//   - DELETE /v1/history       - Clear calculation history
//   - GET    /health           - Health check
//   - GET    /stats            - Usage counters
//
// Errors use a single envelope:
//
//	{"error": {"message": "...", "type": "invalid_request_error", "code": 400}}
//
// An expression the calculator cannot evaluate is not an HTTP error:
// /v1/evaluate answers 200 with result "Error".
//
// # Security Features
//
//   - Binds to loopback by default
//   - Per-IP token bucket rate limiting (golang.org/x/time/rate)
//   - CORS restricted to localhost origins
//   - Request bodies capped at 1MB, unknown JSON fields rejected
//   - Security headers (X-Content-Type-Options, X-Frame-Options, etc.)
//   - Caregiver PIN gate on preference changes, 423 Locked on failure
//
// # Key Types
//
//   - Server: HTTP server with router and middleware
//   - RateLimiter: per-client token buckets
//
// # Usage
//
//	srv := server.NewServer(cfg.Addr()).
//		WithPrefs(prefsStore).
//		WithStorage(db).
//		WithRateLimit(cfg.Server.RateLimitPerMinute, cfg.Server.RateBurst)
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
