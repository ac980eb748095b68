// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// ENUMS
// =============================================================================

// KeyboardLayout selects the on-screen keyboard.
type KeyboardLayout string

const (
	LayoutABC         KeyboardLayout = "abc"
	LayoutQwerty      KeyboardLayout = "qwerty"
	LayoutGrid        KeyboardLayout = "grid"
	LayoutLetterboard KeyboardLayout = "letterboard"
)

// Layouts lists every keyboard layout.
var Layouts = []KeyboardLayout{LayoutABC, LayoutQwerty, LayoutGrid, LayoutLetterboard}

// SizeOption sizes the keyboard and the typing area.
type SizeOption string

const (
	SizeSmall  SizeOption = "small"
	SizeMedium SizeOption = "medium"
	SizeLarge  SizeOption = "large"
)

// KeySize sizes an individual key.
type KeySize = SizeOption

// KeySpacing sets the gap between keys.
type KeySpacing string

const (
	SpacingTight  KeySpacing = "tight"
	SpacingNormal KeySpacing = "normal"
	SpacingWide   KeySpacing = "wide"
)

// Gap is a key spacing in points.
type Gap struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// KeySpacingValues maps each spacing to its gap.
var KeySpacingValues = map[KeySpacing]Gap{
	SpacingTight:  {Horizontal: 2, Vertical: 2},
	SpacingNormal: {Horizontal: 4, Vertical: 4},
	SpacingWide:   {Horizontal: 12, Vertical: 10},
}

func validLayout(l KeyboardLayout) bool {
	switch l {
	case LayoutABC, LayoutQwerty, LayoutGrid, LayoutLetterboard:
		return true
	}
	return false
}

func validSize(s SizeOption) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

func validSpacing(s KeySpacing) bool {
	_, ok := KeySpacingValues[s]
	return ok
}

// =============================================================================
// DOCUMENT
// =============================================================================

// SchemaVersion is the version written by this build.
const SchemaVersion = 3

// Metronome and voice ranges.
const (
	MinMetronomeBpm = 10
	MaxMetronomeBpm = 120
	MinVoiceRate    = 0.1
	MaxVoiceRate    = 2.0
)

// VoiceSettings configure text-to-speech. They are stored for the app and
// never spoken here.
type VoiceSettings struct {
	Rate                     float64 `json:"rate"`
	Pitch                    float64 `json:"pitch"`
	VoiceID                  *string `json:"voiceId"`
	SpeakLettersOnType       bool    `json:"speakLettersOnType"`
	SpeakSentencesOnComplete bool    `json:"speakSentencesOnComplete"`
	SayAndAfterLetters       bool    `json:"sayAndAfterLetters"`
}

// GridDimensions is the saved frame of the resizable grid keyboard.
type GridDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Preferences is the persisted preferences document. JSON names are the
// stable document keys shared with the HTTP API.
type Preferences struct {
	SchemaVersion int `json:"schemaVersion"`

	KeyboardLayout KeyboardLayout `json:"keyboardLayout"`
	KeyboardSize   SizeOption     `json:"keyboardSize"`
	TypingAreaSize SizeOption     `json:"typingAreaSize"`
	KeySpacing     KeySpacing     `json:"keySpacing"`

	DisplayName string `json:"displayName"`
	AvatarID    string `json:"avatarId"`

	ButtonColorID          string `json:"buttonColorId"`
	LetterboardBgColorID   string `json:"letterboardBgColorId"`
	LetterboardTextColorID string `json:"letterboardTextColorId"`
	QwertyTextColor        string `json:"qwertyTextColor"`

	CustomLayouts map[KeyboardLayout][]string           `json:"customLayouts"`
	KeySizes      map[KeyboardLayout]map[string]KeySize `json:"keySizes"`

	VoiceSettings   VoiceSettings   `json:"voiceSettings"`
	MetronomeVolume float64         `json:"metronomeVolume"`
	MetronomeBpm    int             `json:"metronomeBpm"`
	GridDimensions  *GridDimensions `json:"gridDimensions"`

	CaregiverLock *PinHash `json:"caregiverLock,omitempty"`
}

// Defaults returns a fresh document with factory settings.
func Defaults() Preferences {
	p := Preferences{
		SchemaVersion:          SchemaVersion,
		KeyboardLayout:         LayoutABC,
		KeyboardSize:           SizeMedium,
		TypingAreaSize:         SizeSmall,
		KeySpacing:             SpacingNormal,
		DisplayName:            "Young Writer",
		AvatarID:               "robot",
		ButtonColorID:          "soft-blue",
		LetterboardBgColorID:   "classic-white",
		LetterboardTextColorID: "black",
		QwertyTextColor:        "#000000",
		CustomLayouts:          make(map[KeyboardLayout][]string, len(Layouts)),
		KeySizes:               make(map[KeyboardLayout]map[string]KeySize, len(Layouts)),
		VoiceSettings: VoiceSettings{
			Rate:  1.0,
			Pitch: 1.0,
		},
		MetronomeVolume: 0.5,
		MetronomeBpm:    60,
	}
	for _, l := range Layouts {
		p.CustomLayouts[l] = DefaultLayout(l)
		p.KeySizes[l] = map[string]KeySize{}
	}
	return p
}

// Clone returns a deep copy.
func (p Preferences) Clone() Preferences {
	out := p
	out.CustomLayouts = make(map[KeyboardLayout][]string, len(p.CustomLayouts))
	for l, keys := range p.CustomLayouts {
		out.CustomLayouts[l] = append([]string(nil), keys...)
	}
	out.KeySizes = make(map[KeyboardLayout]map[string]KeySize, len(p.KeySizes))
	for l, sizes := range p.KeySizes {
		m := make(map[string]KeySize, len(sizes))
		for k, v := range sizes {
			m[k] = v
		}
		out.KeySizes[l] = m
	}
	if p.VoiceSettings.VoiceID != nil {
		id := *p.VoiceSettings.VoiceID
		out.VoiceSettings.VoiceID = &id
	}
	if p.GridDimensions != nil {
		g := *p.GridDimensions
		out.GridDimensions = &g
	}
	if p.CaregiverLock != nil {
		out.CaregiverLock = p.CaregiverLock.clone()
	}
	return out
}

// Layout returns the key order for layout: the customised one if present,
// else the factory default.
func (p *Preferences) Layout(layout KeyboardLayout) []string {
	if keys := p.CustomLayouts[layout]; len(keys) > 0 {
		return append([]string(nil), keys...)
	}
	return DefaultLayout(layout)
}

// KeySize returns the size of key on layout, "medium" unless resized.
func (p *Preferences) KeySize(layout KeyboardLayout, key string) KeySize {
	if s, ok := p.KeySizes[layout][key]; ok {
		return s
	}
	return SizeMedium
}

// Spacing returns the gap for the selected key spacing.
func (p *Preferences) Spacing() Gap { return KeySpacingValues[p.KeySpacing] }

// =============================================================================
// VALIDATION
// =============================================================================

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("prefs: invalid value")

// Validate checks enum fields, ranges and layouts.
func (p *Preferences) Validate() error {
	var problems []string
	if !validLayout(p.KeyboardLayout) {
		problems = append(problems, fmt.Sprintf("keyboardLayout %q", p.KeyboardLayout))
	}
	if !validSize(p.KeyboardSize) {
		problems = append(problems, fmt.Sprintf("keyboardSize %q", p.KeyboardSize))
	}
	if !validSize(p.TypingAreaSize) {
		problems = append(problems, fmt.Sprintf("typingAreaSize %q", p.TypingAreaSize))
	}
	if !validSpacing(p.KeySpacing) {
		problems = append(problems, fmt.Sprintf("keySpacing %q", p.KeySpacing))
	}
	if p.MetronomeVolume < 0 || p.MetronomeVolume > 1 || math.IsNaN(p.MetronomeVolume) {
		problems = append(problems, fmt.Sprintf("metronomeVolume %v not in [0,1]", p.MetronomeVolume))
	}
	if p.MetronomeBpm < MinMetronomeBpm || p.MetronomeBpm > MaxMetronomeBpm {
		problems = append(problems, fmt.Sprintf("metronomeBpm %d not in [%d,%d]", p.MetronomeBpm, MinMetronomeBpm, MaxMetronomeBpm))
	}
	for l, keys := range p.CustomLayouts {
		if !validLayout(l) {
			problems = append(problems, fmt.Sprintf("customLayouts has unknown layout %q", l))
			continue
		}
		if err := validateKeys(keys); err != nil {
			problems = append(problems, fmt.Sprintf("customLayouts.%s: %v", l, err))
		}
	}
	for l, sizes := range p.KeySizes {
		for k, s := range sizes {
			if !validSize(s) {
				problems = append(problems, fmt.Sprintf("keySizes.%s[%q] %q", l, k, s))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func validateKeys(keys []string) error {
	if len(keys) == 0 {
		return errors.New("no keys")
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return errors.New("blank key")
		}
		if seen[k] {
			return fmt.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
	return nil
}

// =============================================================================
// FIELD ACCESS
// =============================================================================

// Fields lists the names accepted by SetField.
var Fields = []string{
	"keyboardLayout", "keyboardSize", "typingAreaSize", "keySpacing",
	"displayName", "avatarId", "buttonColorId", "letterboardBgColorId",
	"letterboardTextColorId", "qwertyTextColor", "metronomeVolume",
	"metronomeBpm", "voice.rate", "voice.pitch", "voice.voiceId",
	"voice.speakLettersOnType", "voice.speakSentencesOnComplete",
	"voice.sayAndAfterLetters",
}

// SetField sets one field from its string form, applying the same clamps
// as the typed setters. The result is not validated.
func (p *Preferences) SetField(name, value string) error {
	switch name {
	case "keyboardLayout":
		p.KeyboardLayout = KeyboardLayout(value)
	case "keyboardSize":
		p.KeyboardSize = SizeOption(value)
	case "typingAreaSize":
		p.TypingAreaSize = SizeOption(value)
	case "keySpacing":
		p.KeySpacing = KeySpacing(value)
	case "displayName":
		p.DisplayName = value
	case "avatarId":
		p.AvatarID = value
	case "buttonColorId":
		p.ButtonColorID = value
	case "letterboardBgColorId":
		p.LetterboardBgColorID = value
	case "letterboardTextColorId":
		p.LetterboardTextColorID = value
	case "qwertyTextColor":
		p.QwertyTextColor = value
	case "metronomeVolume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: metronomeVolume %q is not a number", ErrInvalid, value)
		}
		p.MetronomeVolume = clampVolume(v)
	case "metronomeBpm":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: metronomeBpm %q is not an integer", ErrInvalid, value)
		}
		p.MetronomeBpm = clampBpm(v)
	case "voice.rate", "voice.pitch":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a number", ErrInvalid, name, value)
		}
		if name == "voice.rate" {
			p.VoiceSettings.Rate = clampRate(v)
		} else {
			p.VoiceSettings.Pitch = clampRate(v)
		}
	case "voice.voiceId":
		if value == "" || value == "null" {
			p.VoiceSettings.VoiceID = nil
		} else {
			p.VoiceSettings.VoiceID = &value
		}
	case "voice.speakLettersOnType", "voice.speakSentencesOnComplete", "voice.sayAndAfterLetters":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s %q is not a boolean", ErrInvalid, name, value)
		}
		switch name {
		case "voice.speakLettersOnType":
			p.VoiceSettings.SpeakLettersOnType = b
		case "voice.speakSentencesOnComplete":
			p.VoiceSettings.SpeakSentencesOnComplete = b
		default:
			p.VoiceSettings.SayAndAfterLetters = b
		}
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalid, name)
	}
	return nil
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0.5
	}
	return math.Max(0, math.Min(1, v))
}

func clampBpm(v int) int {
	if v < MinMetronomeBpm {
		return MinMetronomeBpm
	}
	if v > MaxMetronomeBpm {
		return MaxMetronomeBpm
	}
	return v
}

func clampRate(v float64) float64 {
	if math.IsNaN(v) {
		return 1.0
	}
	return math.Max(MinVoiceRate, math.Min(MaxVoiceRate, v))
}
