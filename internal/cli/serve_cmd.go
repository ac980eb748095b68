// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve_cmd.go - Serve command implementation for typebuddy.
//
// Command: serve
// Short:   Run the local HTTP API
// Aliases: server
//
// Examples:
//   typebuddy serve                     Listen on server.host:server.port
//   typebuddy serve --port 9000
//   typebuddy serve --host 0.0.0.0      Expose on the network (no auth!)
//
// Flags:
//   --host H            Listen host (default: server.host)
//   --port N            Listen port (default: server.port)
//
// SECURITY: The API has no authentication beyond the caregiver PIN on
// preference changes. Keep the default loopback host unless the network
// is trusted.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jeranaias/typebuddy/internal/prefs"
	"github.com/jeranaias/typebuddy/internal/server"
)

// shutdownTimeout bounds graceful shutdown after a signal.
const shutdownTimeout = 10 * time.Second

// HandleServe handles the "serve" command. It blocks until SIGINT or
// SIGTERM.
func HandleServe(args Args) error {
	cfg := loadConfig()
	p := NewArgParser(args.Raw)

	host := p.FlagOrDefault("host", cfg.Server.Host)
	port, err := p.FlagIntOrDefault("port", cfg.Server.Port)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return NewValidationErrorWithExample("port", fmt.Sprint(port), "must be between 1 and 65535", "--port 8787")
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(stderr, "", log.LstdFlags)
	if args.Quiet {
		logger.SetOutput(io.Discard)
	}

	sg, err := newSuggester(cfg.Suggest.LexiconPath)
	if err != nil {
		return err
	}

	prefStore, err := openPrefs(cfg)
	if err != nil {
		return NewCommandError("serve", "start", "could not read preferences", err)
	}
	watcher, err := prefStore.Watch(ctx, func(prefs.Preferences) {
		logger.Printf("PREFS_RELOADED | path=%s", prefStore.Path())
	})
	if err != nil {
		logger.Printf("PREFS_WATCH_FAILED | error=%v", err)
	} else {
		defer watcher.Close()
	}

	srv := server.NewServer(addr).
		WithLogger(logger).
		WithSuggester(sg).
		WithPrefs(prefStore).
		WithRateLimit(cfg.Server.RateLimitPerMinute, cfg.Server.RateBurst).
		WithGraphDefaults(server.GraphDefaults{
			XMin:     cfg.Calculator.XMin,
			XMax:     cfg.Calculator.XMax,
			Points:   cfg.Calculator.GraphPoints,
			Variable: cfg.Calculator.Variable,
		})

	if cfg.History.Enabled {
		store, err := openStorage(cfg)
		if err != nil {
			logger.Printf("STORAGE_UNAVAILABLE | error=%v", err)
		} else {
			defer store.Close()
			srv.WithStorage(store)
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return NewCommandError("serve", "listen", addr, err)
	}
	if !args.Quiet && !args.JSON {
		fmt.Fprintf(stdout, "%s listening on %s\n", TitleStyle.Render("typebuddy"), SuccessStyle.Render("http://"+ln.Addr().String()))
		fmt.Fprintln(stdout, DimStyle.Render("Press Ctrl+C to stop."))
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if err != nil {
			return NewCommandError("serve", "run", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return NewCommandError("serve", "shutdown", addr, err)
	}
	return <-errCh
}
