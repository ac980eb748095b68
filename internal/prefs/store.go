// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/typebuddy/internal/util"
)

// FileName is the preferences file inside the data directory.
const FileName = "preferences.json"

// ErrCorrupt reports a preferences file that is not valid JSON or fails
// validation after migration. The store falls back to defaults.
var ErrCorrupt = errors.New("prefs: preferences file is corrupt")

// DefaultPath returns the preferences path inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Store holds the current preferences and persists every change. It is
// safe for concurrent use.
type Store struct {
	path string

	mu       sync.RWMutex
	prefs    Preferences
	lastData []byte // bytes last read or written, to skip our own writes
	attempts attempts
	now      func() time.Time
}

// NewStore returns a store for path holding defaults until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path, prefs: Defaults(), now: time.Now}
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// Load reads the file, migrating older documents and writing them back.
// A missing file leaves defaults in place. A corrupt file also leaves
// defaults in place and returns an error wrapping ErrCorrupt.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.prefs = Defaults()
		s.lastData = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	p, from, applied, err := decode(data)
	if err != nil {
		s.mu.Lock()
		s.prefs = Defaults()
		s.lastData = nil
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	s.lastData = data

	if len(applied) > 0 {
		log.Printf("PREFS_MIGRATED | path=%s from=%d to=%d steps=%q", s.path, from, p.SchemaVersion, strings.Join(applied, ", "))
		if err := s.saveLocked(p); err != nil {
			log.Printf("PREFS_SAVE_FAILED | path=%s error=%v", s.path, err)
		}
	}
	return nil
}

// decode parses a stored document over defaults and migrates it.
func decode(data []byte) (p Preferences, from int, applied []string, err error) {
	p = Defaults()
	p.SchemaVersion = 0
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, 0, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	from = p.SchemaVersion
	applied = Migrate(&p)
	if err := p.Validate(); err != nil {
		return Preferences{}, 0, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p, from, applied, nil
}

// Get returns a copy of the current preferences.
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// Update applies fn to a copy of the preferences, validates the result and
// saves it. Nothing changes if fn or validation fails.
func (s *Store) Update(fn func(*Preferences) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(fn)
}

func (s *Store) updateLocked(fn func(*Preferences) error) error {
	next := s.prefs.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.SchemaVersion = SchemaVersion
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.saveLocked(next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

// Save writes the current preferences.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(s.prefs)
}

func (s *Store) saveLocked(p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	// SECURITY: 0600 - the file carries the caregiver PIN hash
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	s.lastData = data
	return nil
}

// Patch merges a partial JSON document into the preferences, the way the
// app saves a subset of fields. The schema version and caregiver lock
// cannot be changed through a patch.
func (s *Store) Patch(data []byte) error {
	return s.Update(patch(data))
}

// PatchWithPin is Patch guarded by the caregiver lock.
func (s *Store) PatchWithPin(pin string, data []byte) error {
	return s.UpdateWithPin(pin, patch(data))
}

func patch(data []byte) func(*Preferences) error {
	return func(p *Preferences) error {
		lock := p.CaregiverLock
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		p.CaregiverLock = lock
		return nil
	}
}

// =============================================================================
// CAREGIVER LOCK
// =============================================================================

// Locked reports whether a caregiver PIN is set.
func (s *Store) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.CaregiverLock != nil
}

// Authorize checks pin when a caregiver PIN is set. Without a lock every
// pin (including "") is accepted.
func (s *Store) Authorize(pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorizeLocked(pin)
}

func (s *Store) authorizeLocked(pin string) error {
	if s.prefs.CaregiverLock == nil {
		return nil
	}
	return s.attempts.check(s.prefs.CaregiverLock, pin, s.now())
}

// Unlock reports whether pin opens the caregiver lock. Wrong PINs count
// towards the lockout.
func (s *Store) Unlock(pin string) bool {
	return s.Authorize(pin) == nil
}

// UpdateWithPin is Update guarded by the caregiver lock.
func (s *Store) UpdateWithPin(pin string, fn func(*Preferences) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorizeLocked(pin); err != nil {
		return err
	}
	return s.updateLocked(fn)
}

// SetLock sets or changes the caregiver PIN. Changing an existing PIN
// requires the current one.
func (s *Store) SetLock(currentPin, newPin string) error {
	hash, err := NewPinHash(newPin)
	if err != nil {
		return err
	}
	return s.UpdateWithPin(currentPin, func(p *Preferences) error {
		p.CaregiverLock = hash
		return nil
	})
}

// ClearLock removes the caregiver PIN.
func (s *Store) ClearLock(pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.CaregiverLock == nil {
		return ErrNoLock
	}
	if err := s.authorizeLocked(pin); err != nil {
		return err
	}
	return s.updateLocked(func(p *Preferences) error {
		p.CaregiverLock = nil
		return nil
	})
}

// =============================================================================
// SETTERS
// =============================================================================

// SetKeyboardLayout selects the on-screen keyboard.
func (s *Store) SetKeyboardLayout(l KeyboardLayout) error {
	return s.Update(func(p *Preferences) error { p.KeyboardLayout = l; return nil })
}

// SetKeyboardSize sizes the keyboard.
func (s *Store) SetKeyboardSize(size SizeOption) error {
	return s.Update(func(p *Preferences) error { p.KeyboardSize = size; return nil })
}

// SetTypingAreaSize sizes the typing area.
func (s *Store) SetTypingAreaSize(size SizeOption) error {
	return s.Update(func(p *Preferences) error { p.TypingAreaSize = size; return nil })
}

// SetKeySpacing sets the gap between keys.
func (s *Store) SetKeySpacing(spacing KeySpacing) error {
	return s.Update(func(p *Preferences) error { p.KeySpacing = spacing; return nil })
}

// SetDisplayName sets the profile name.
func (s *Store) SetDisplayName(name string) error {
	return s.Update(func(p *Preferences) error { p.DisplayName = name; return nil })
}

// SetAvatarID sets the profile avatar.
func (s *Store) SetAvatarID(id string) error {
	return s.Update(func(p *Preferences) error { p.AvatarID = id; return nil })
}

// SetButtonColorID selects the key colour.
func (s *Store) SetButtonColorID(id string) error {
	return s.Update(func(p *Preferences) error { p.ButtonColorID = id; return nil })
}

// SetLetterboardBgColorID selects the letterboard background.
func (s *Store) SetLetterboardBgColorID(id string) error {
	return s.Update(func(p *Preferences) error { p.LetterboardBgColorID = id; return nil })
}

// SetLetterboardTextColorID selects the letterboard text colour.
func (s *Store) SetLetterboardTextColorID(id string) error {
	return s.Update(func(p *Preferences) error { p.LetterboardTextColorID = id; return nil })
}

// SetQwertyTextColor sets the QWERTY key text colour.
func (s *Store) SetQwertyTextColor(color string) error {
	return s.Update(func(p *Preferences) error { p.QwertyTextColor = color; return nil })
}

// SetCustomLayout stores a rearranged key order for layout.
func (s *Store) SetCustomLayout(l KeyboardLayout, keys []string) error {
	return s.Update(func(p *Preferences) error {
		if !validLayout(l) {
			return fmt.Errorf("%w: keyboard layout %q", ErrInvalid, l)
		}
		if p.CustomLayouts == nil {
			p.CustomLayouts = map[KeyboardLayout][]string{}
		}
		p.CustomLayouts[l] = append([]string(nil), keys...)
		return nil
	})
}

// ResetCustomLayout restores the factory key order and key sizes of layout.
func (s *Store) ResetCustomLayout(l KeyboardLayout) error {
	return s.Update(func(p *Preferences) error {
		if !validLayout(l) {
			return fmt.Errorf("%w: keyboard layout %q", ErrInvalid, l)
		}
		if p.CustomLayouts == nil {
			p.CustomLayouts = map[KeyboardLayout][]string{}
		}
		if p.KeySizes == nil {
			p.KeySizes = map[KeyboardLayout]map[string]KeySize{}
		}
		p.CustomLayouts[l] = DefaultLayout(l)
		p.KeySizes[l] = map[string]KeySize{}
		return nil
	})
}

// CustomLayout returns the key order in use for layout.
func (s *Store) CustomLayout(l KeyboardLayout) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Layout(l)
}

// KeySize returns the size of key on layout.
func (s *Store) KeySize(l KeyboardLayout, key string) KeySize {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.KeySize(l, key)
}

// SetKeySize resizes one key of layout.
func (s *Store) SetKeySize(l KeyboardLayout, key string, size KeySize) error {
	return s.Update(func(p *Preferences) error {
		if !validLayout(l) {
			return fmt.Errorf("%w: keyboard layout %q", ErrInvalid, l)
		}
		if p.KeySizes == nil {
			p.KeySizes = map[KeyboardLayout]map[string]KeySize{}
		}
		if p.KeySizes[l] == nil {
			p.KeySizes[l] = map[string]KeySize{}
		}
		p.KeySizes[l][key] = size
		return nil
	})
}

// SetVoiceSettings edits the voice settings in place.
func (s *Store) SetVoiceSettings(edit func(*VoiceSettings)) error {
	return s.Update(func(p *Preferences) error {
		edit(&p.VoiceSettings)
		p.VoiceSettings.Rate = clampRate(p.VoiceSettings.Rate)
		p.VoiceSettings.Pitch = clampRate(p.VoiceSettings.Pitch)
		return nil
	})
}

// SetMetronomeVolume sets the volume, clamped to [0, 1].
func (s *Store) SetMetronomeVolume(v float64) error {
	return s.Update(func(p *Preferences) error { p.MetronomeVolume = clampVolume(v); return nil })
}

// SetMetronomeBpm sets the tempo, clamped to [10, 120].
func (s *Store) SetMetronomeBpm(bpm int) error {
	return s.Update(func(p *Preferences) error { p.MetronomeBpm = clampBpm(bpm); return nil })
}

// SetGridDimensions saves the grid keyboard frame; nil clears it.
func (s *Store) SetGridDimensions(d *GridDimensions) error {
	return s.Update(func(p *Preferences) error {
		if d == nil {
			p.GridDimensions = nil
			return nil
		}
		g := *d
		p.GridDimensions = &g
		return nil
	})
}
