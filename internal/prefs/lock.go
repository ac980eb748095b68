// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// CAREGIVER PIN
// =============================================================================

const (
	// MinPinLength and MaxPinLength bound a caregiver PIN (digits only).
	MinPinLength = 4
	MaxPinLength = 8

	// MaxPinAttempts wrong PINs in a row lock changes out for
	// PinLockoutDuration.
	MaxPinAttempts     = 3
	PinLockoutDuration = 15 * time.Minute

	pinSaltSize = 32
	pinKeySize  = 32
)

// SECURITY: PBKDF2-SHA-256 with a per-PIN random salt.
// Tests lower this to keep the suite fast.
var pinIterations = 600000

var (
	// ErrPinFormat reports a PIN that is not 4-8 digits.
	ErrPinFormat = errors.New("prefs: PIN must be 4 to 8 digits")

	// ErrPinRequired reports a change attempted while the caregiver lock is
	// set and no PIN was given.
	ErrPinRequired = errors.New("prefs: caregiver PIN required")

	// ErrWrongPin reports a PIN that does not match.
	ErrWrongPin = errors.New("prefs: wrong caregiver PIN")

	// ErrLockedOut reports too many wrong PINs.
	ErrLockedOut = errors.New("prefs: too many wrong PINs, try again later")

	// ErrNoLock reports an unlock attempt when no PIN is set.
	ErrNoLock = errors.New("prefs: no caregiver PIN is set")
)

// PinHash is a salted PBKDF2 hash of a caregiver PIN.
type PinHash struct {
	Salt       []byte `json:"salt"`
	Hash       []byte `json:"hash"`
	Iterations int    `json:"iterations"`
}

// NewPinHash validates pin and hashes it with a fresh salt.
func NewPinHash(pin string) (*PinHash, error) {
	if err := checkPinFormat(pin); err != nil {
		return nil, err
	}
	salt := make([]byte, pinSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return &PinHash{
		Salt:       salt,
		Hash:       derivePin(pin, salt, pinIterations),
		Iterations: pinIterations,
	}, nil
}

// Matches reports whether pin hashes to h, in constant time.
func (h *PinHash) Matches(pin string) bool {
	if h == nil || h.Iterations <= 0 {
		return false
	}
	got := derivePin(pin, h.Salt, h.Iterations)
	return subtle.ConstantTimeCompare(got, h.Hash) == 1
}

func (h *PinHash) clone() *PinHash {
	return &PinHash{
		Salt:       append([]byte(nil), h.Salt...),
		Hash:       append([]byte(nil), h.Hash...),
		Iterations: h.Iterations,
	}
}

func derivePin(pin string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(pin), salt, iterations, pinKeySize, sha256.New)
}

func checkPinFormat(pin string) error {
	if len(pin) < MinPinLength || len(pin) > MaxPinLength {
		return ErrPinFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrPinFormat
		}
	}
	return nil
}

// attempts tracks wrong PINs in memory. A restart clears it.
type attempts struct {
	failures    int
	lockedUntil time.Time
}

// check verifies pin against hash, counting failures. Callers hold the
// store lock.
func (a *attempts) check(hash *PinHash, pin string, now time.Time) error {
	if now.Before(a.lockedUntil) {
		return fmt.Errorf("%w (%s remaining)", ErrLockedOut, a.lockedUntil.Sub(now).Round(time.Second))
	}
	if pin == "" {
		return ErrPinRequired
	}
	if hash.Matches(pin) {
		a.failures = 0
		return nil
	}
	a.failures++
	if a.failures >= MaxPinAttempts {
		a.failures = 0
		a.lockedUntil = now.Add(PinLockoutDuration)
		return ErrLockedOut
	}
	return ErrWrongPin
}
