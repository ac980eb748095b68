// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pinIterations = 1000
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultPath(t.TempDir()))
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Load())
	assert.Equal(t, Defaults().KeyboardLayout, s.Get().KeyboardLayout)
	assert.NoFileExists(t, s.Path())
}

func TestStore_LoadCorrupt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0600))

	err := s.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, LayoutABC, s.Get().KeyboardLayout)
}

func TestStore_LoadMigratesAndRewrites(t *testing.T) {
	s := newTestStore(t)
	old := `{
		"keyboardLayout": "qwerty",
		"displayName": "Ada",
		"customLayouts": {"abc": ["A", "B", "DELETE"], "grid": ["A", "'"]},
		"metronomeBpm": 4
	}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(old), 0600))

	require.NoError(t, s.Load())
	p := s.Get()
	assert.Equal(t, LayoutQwerty, p.KeyboardLayout)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, "medium", string(p.KeyboardSize), "missing fields keep defaults")
	assert.Equal(t, []string{"A", "B", KeySpace, KeyEnter}, p.Layout(LayoutABC))
	assert.Equal(t, DefaultLayout(LayoutGrid), p.Layout(LayoutGrid))
	assert.Equal(t, MinMetronomeBpm, p.MetronomeBpm)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(SchemaVersion), doc["schemaVersion"])
}

func TestStore_UpdatePersists(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetKeyboardLayout(LayoutGrid))
	require.NoError(t, s.SetKeySize(LayoutGrid, "A", SizeLarge))
	require.NoError(t, s.SetMetronomeBpm(200))
	require.NoError(t, s.SetGridDimensions(&GridDimensions{Width: 320, Height: 240, X: 10, Y: 20}))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	other := NewStore(s.Path())
	require.NoError(t, other.Load())
	p := other.Get()
	assert.Equal(t, LayoutGrid, p.KeyboardLayout)
	assert.Equal(t, SizeLarge, p.KeySize(LayoutGrid, "A"))
	assert.Equal(t, MaxMetronomeBpm, p.MetronomeBpm)
	require.NotNil(t, p.GridDimensions)
	assert.Equal(t, 240.0, p.GridDimensions.Height)
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	err := s.SetKeyboardLayout("dvorak")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, LayoutABC, s.Get().KeyboardLayout)
	assert.NoFileExists(t, s.Path())

	err = s.SetCustomLayout(LayoutABC, []string{"A", "A"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStore_CustomLayoutReset(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetCustomLayout(LayoutABC, []string{"B", "A", KeySpace}))
	require.NoError(t, s.SetKeySize(LayoutABC, "B", SizeSmall))
	assert.Equal(t, []string{"B", "A", KeySpace}, s.CustomLayout(LayoutABC))
	assert.Equal(t, SizeSmall, s.KeySize(LayoutABC, "B"))

	require.NoError(t, s.ResetCustomLayout(LayoutABC))
	p := s.Get()
	assert.Equal(t, DefaultLayout(LayoutABC), p.Layout(LayoutABC))
	assert.Equal(t, SizeMedium, p.KeySize(LayoutABC, "B"))
}

func TestStore_VoiceSettings(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetVoiceSettings(func(v *VoiceSettings) {
		v.Rate = 0
		v.SayAndAfterLetters = true
	}))
	v := s.Get().VoiceSettings
	assert.Equal(t, MinVoiceRate, v.Rate)
	assert.True(t, v.SayAndAfterLetters)
}

func TestStore_Patch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetLock("", "1234"))

	err := s.Patch([]byte(`{"displayName":"Sam","customLayouts":{"qwerty":["Q","W","SPACE"]},"caregiverLock":null,"schemaVersion":1}`))
	require.NoError(t, err)

	p := s.Get()
	assert.Equal(t, "Sam", p.DisplayName)
	assert.Equal(t, []string{"Q", "W", KeySpace}, p.Layout(LayoutQwerty))
	assert.Equal(t, DefaultLayout(LayoutABC), p.Layout(LayoutABC), "other layouts kept")
	assert.NotNil(t, p.CaregiverLock, "patch cannot remove the lock")
	assert.Equal(t, SchemaVersion, p.SchemaVersion)

	assert.ErrorIs(t, s.Patch([]byte(`{"colour":"red"}`)), ErrInvalid)
	assert.ErrorIs(t, s.Patch([]byte(`{"keyboardSize":"huge"}`)), ErrInvalid)
	assert.Equal(t, SizeMedium, s.Get().KeyboardSize)
}

func TestStore_CaregiverLock(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.False(t, s.Locked())
	assert.NoError(t, s.Authorize(""), "no lock accepts anything")
	assert.ErrorIs(t, s.ClearLock("1234"), ErrNoLock)

	assert.ErrorIs(t, s.SetLock("", "12ab"), ErrPinFormat)
	assert.ErrorIs(t, s.SetLock("", "123"), ErrPinFormat)
	require.NoError(t, s.SetLock("", "1234"))
	assert.True(t, s.Locked())

	update := func(pin string) error {
		return s.UpdateWithPin(pin, func(p *Preferences) error {
			p.DisplayName = "changed"
			return nil
		})
	}

	assert.ErrorIs(t, update(""), ErrPinRequired)
	assert.ErrorIs(t, update("0000"), ErrWrongPin)
	assert.ErrorIs(t, update("1111"), ErrWrongPin)
	assert.ErrorIs(t, update("2222"), ErrLockedOut)
	assert.ErrorIs(t, update("1234"), ErrLockedOut, "correct PIN refused while locked out")
	assert.Equal(t, "Young Writer", s.Get().DisplayName)

	now = now.Add(PinLockoutDuration + time.Second)
	require.NoError(t, update("1234"))
	assert.Equal(t, "changed", s.Get().DisplayName)

	// The hash survives a reload.
	other := NewStore(s.Path())
	require.NoError(t, other.Load())
	assert.True(t, other.Locked())
	assert.NoError(t, other.Authorize("1234"))
	assert.False(t, other.Unlock("9999"))
	assert.True(t, other.Unlock("1234"))

	assert.ErrorIs(t, s.SetLock("0000", "5678"), ErrWrongPin)
	require.NoError(t, s.SetLock("1234", "5678"))
	require.NoError(t, s.ClearLock("5678"))
	assert.False(t, s.Locked())
}

func TestPinHash(t *testing.T) {
	a, err := NewPinHash("2468")
	require.NoError(t, err)
	b, err := NewPinHash("2468")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Hash, b.Hash)
	assert.True(t, a.Matches("2468"))
	assert.False(t, a.Matches("2469"))

	var nilHash *PinHash
	assert.False(t, nilHash.Matches("2468"))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", FileName), DefaultPath("data"))
}
