// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

// migration upgrades a document to version.
type migration struct {
	version int
	name    string
	apply   func(*Preferences)
}

// migrations run in order; each one moves a document to its version.
//
// Version 0 is the unversioned blob written by early releases.
var migrations = []migration{
	{version: 1, name: "repair keyboard layouts", apply: repairLayouts},
	{version: 2, name: "add letterboard", apply: addLetterboard},
	{version: 3, name: "clamp ranges and enums", apply: clampRanges},
}

// Migrate upgrades p to SchemaVersion and returns the names of the steps
// it applied. Documents from a newer build are left untouched.
func Migrate(p *Preferences) []string {
	var applied []string
	for _, m := range migrations {
		if p.SchemaVersion >= m.version {
			continue
		}
		m.apply(p)
		p.SchemaVersion = m.version
		applied = append(applied, m.name)
	}
	return applied
}

// repairLayouts brings v0 layouts up to date: an old grid is replaced, the
// ABC keyboard loses DELETE and gains SPACE and ENTER at the end, and a
// QWERTY keyboard without SPACE gets DELETE, SPACE and ENTER back.
func repairLayouts(p *Preferences) {
	if p.CustomLayouts == nil {
		p.CustomLayouts = map[KeyboardLayout][]string{}
	}
	for _, l := range []KeyboardLayout{LayoutABC, LayoutQwerty} {
		if len(p.CustomLayouts[l]) == 0 {
			p.CustomLayouts[l] = DefaultLayout(l)
		}
	}

	if grid := p.CustomLayouts[LayoutGrid]; len(grid) == 0 || gridLayoutOutdated(grid) {
		p.CustomLayouts[LayoutGrid] = DefaultLayout(LayoutGrid)
	}

	abc := without(p.CustomLayouts[LayoutABC], func(k string) bool { return k == KeyDelete })
	if !contains(abc, KeySpace) || !contains(abc, KeyEnter) {
		abc = append(without(abc, isSpecial), KeySpace, KeyEnter)
	}
	p.CustomLayouts[LayoutABC] = abc

	if qwerty := p.CustomLayouts[LayoutQwerty]; !contains(qwerty, KeySpace) {
		p.CustomLayouts[LayoutQwerty] = append(without(qwerty, isSpecial), KeyDelete, KeySpace, KeyEnter)
	}

	if p.KeySizes == nil {
		p.KeySizes = map[KeyboardLayout]map[string]KeySize{}
	}
	for _, l := range []KeyboardLayout{LayoutABC, LayoutQwerty, LayoutGrid} {
		if p.KeySizes[l] == nil {
			p.KeySizes[l] = map[string]KeySize{}
		}
	}
}

// addLetterboard adds the letterboard keyboard and its colours.
func addLetterboard(p *Preferences) {
	if len(p.CustomLayouts[LayoutLetterboard]) == 0 {
		p.CustomLayouts[LayoutLetterboard] = DefaultLayout(LayoutLetterboard)
	}
	if p.KeySizes[LayoutLetterboard] == nil {
		p.KeySizes[LayoutLetterboard] = map[string]KeySize{}
	}
	if p.LetterboardBgColorID == "" {
		p.LetterboardBgColorID = LetterboardColors[0].ID
	}
	if p.LetterboardTextColorID == "" {
		p.LetterboardTextColorID = LetterboardTextColors[0].ID
	}
}

// clampRanges pulls numeric settings into range and resets enum values this
// build does not know.
func clampRanges(p *Preferences) {
	d := Defaults()

	p.MetronomeVolume = clampVolume(p.MetronomeVolume)
	p.MetronomeBpm = clampBpm(p.MetronomeBpm)
	p.VoiceSettings.Rate = clampRate(p.VoiceSettings.Rate)
	p.VoiceSettings.Pitch = clampRate(p.VoiceSettings.Pitch)

	if !validLayout(p.KeyboardLayout) {
		p.KeyboardLayout = d.KeyboardLayout
	}
	if !validSize(p.KeyboardSize) {
		p.KeyboardSize = d.KeyboardSize
	}
	if !validSize(p.TypingAreaSize) {
		p.TypingAreaSize = d.TypingAreaSize
	}
	if !validSpacing(p.KeySpacing) {
		p.KeySpacing = d.KeySpacing
	}
	for l, sizes := range p.KeySizes {
		for k, s := range sizes {
			if !validSize(s) {
				delete(p.KeySizes[l], k)
			}
		}
	}
	for l, keys := range p.CustomLayouts {
		switch {
		case !validLayout(l):
			delete(p.CustomLayouts, l)
		case validateKeys(keys) != nil:
			p.CustomLayouts[l] = DefaultLayout(l)
		}
	}
	for l := range p.KeySizes {
		if !validLayout(l) {
			delete(p.KeySizes, l)
		}
	}
}
