// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must be quiet before a reload.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a store when its file is changed by another process,
// such as a second TypeBuddy window or a hand edit.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(Preferences)

	mu      sync.Mutex
	pending time.Time // zero when nothing is waiting

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watch starts watching the store's file until ctx is done or Close is
// called. onChange, if not nil, is called with the new preferences after
// every reload. The directory is watched rather than the file, since atomic
// saves replace the file.
func (s *Store) Watch(ctx context.Context, onChange func(Preferences)) (*Watcher, error) {
	return s.watch(ctx, DefaultDebounce, onChange)
}

func (s *Store) watch(parent context.Context, debounce time.Duration, onChange func(Preferences)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		store:    s,
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}
	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	name := filepath.Clean(w.store.path)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("PREFS_WATCH_ERROR | path=%s error=%v", w.store.path, err)
		}
	}
}

func (w *Watcher) processPending() {
	defer w.wg.Done()
	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case now := <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if !due {
				continue
			}

			p, changed, err := w.store.reload()
			if err != nil {
				log.Printf("PREFS_RELOAD_FAILED | path=%s error=%v", w.store.path, err)
				continue
			}
			if changed {
				log.Printf("PREFS_RELOADED | path=%s layout=%s", w.store.path, p.KeyboardLayout)
				if w.onChange != nil {
					w.onChange(p)
				}
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// reload re-reads the file. Bytes equal to the last read or write are
// ignored, which filters out the store's own saves. A vanished or corrupt
// file keeps the current preferences.
func (s *Store) reload() (Preferences, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Preferences{}, false, nil
	}
	if err != nil {
		return Preferences{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(data, s.lastData) {
		return Preferences{}, false, nil
	}
	p, _, _, err := decode(data)
	if err != nil {
		return Preferences{}, false, err
	}
	s.prefs = p
	s.lastData = data
	return p.Clone(), true, nil
}
