// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

// Color is one palette entry.
type Color struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	TextColor string `json:"textColor,omitempty"`
}

// ButtonColors is the key colour palette. Every entry pairs with black text.
var ButtonColors = []Color{
	{ID: "soft-blue", Label: "Soft Blue", Value: "#A8C5E2", TextColor: "#000000"},
	{ID: "mint", Label: "Mint", Value: "#B8E0D2", TextColor: "#000000"},
	{ID: "peach", Label: "Peach", Value: "#F5D5C8", TextColor: "#000000"},
	{ID: "lavender", Label: "Lavender", Value: "#D4C5E2", TextColor: "#000000"},
	{ID: "blush", Label: "Blush", Value: "#F2D1D9", TextColor: "#000000"},
	{ID: "sage", Label: "Sage", Value: "#C5D5C5", TextColor: "#000000"},
	{ID: "cream", Label: "Cream", Value: "#F5ECD7", TextColor: "#000000"},
	{ID: "cloud", Label: "Cloud", Value: "#E8E8E8", TextColor: "#000000"},
}

// LetterboardColors is the letterboard background palette.
var LetterboardColors = []Color{
	{ID: "classic-white", Label: "Classic White", Value: "#FFFFFF"},
	{ID: "soft-cream", Label: "Soft Cream", Value: "#FFF8E7"},
	{ID: "light-gray", Label: "Light Gray", Value: "#E8E8E8"},
	{ID: "mint-green", Label: "Mint Green", Value: "#E8F5E9"},
	{ID: "sky-blue", Label: "Sky Blue", Value: "#E3F2FD"},
	{ID: "lavender", Label: "Lavender", Value: "#F3E5F5"},
	{ID: "peach", Label: "Peach", Value: "#FBE9E7"},
	{ID: "charcoal", Label: "Charcoal", Value: "#424242"},
	{ID: "navy", Label: "Navy", Value: "#1A237E"},
	{ID: "forest", Label: "Forest", Value: "#1B5E20"},
}

// LetterboardTextColors is the letterboard text palette.
var LetterboardTextColors = []Color{
	{ID: "black", Label: "Black", Value: "#000000"},
	{ID: "dark-gray", Label: "Dark Gray", Value: "#424242"},
	{ID: "white", Label: "White", Value: "#FFFFFF"},
	{ID: "navy", Label: "Navy", Value: "#1A237E"},
	{ID: "brown", Label: "Brown", Value: "#5D4037"},
	{ID: "dark-green", Label: "Dark Green", Value: "#1B5E20"},
	{ID: "maroon", Label: "Maroon", Value: "#880E4F"},
}

// FindColor returns the entry with id, falling back to the first entry of
// the palette when id is unknown.
func FindColor(palette []Color, id string) Color {
	for _, c := range palette {
		if c.ID == id {
			return c
		}
	}
	if len(palette) == 0 {
		return Color{}
	}
	return palette[0]
}

// ButtonColor returns the selected key colour.
func (p *Preferences) ButtonColor() string { return FindColor(ButtonColors, p.ButtonColorID).Value }

// ButtonTextColor returns the text colour paired with the key colour.
func (p *Preferences) ButtonTextColor() string {
	return FindColor(ButtonColors, p.ButtonColorID).TextColor
}

// LetterboardBgColor returns the selected letterboard background.
func (p *Preferences) LetterboardBgColor() string {
	return FindColor(LetterboardColors, p.LetterboardBgColorID).Value
}

// LetterboardTextColor returns the selected letterboard text colour.
func (p *Preferences) LetterboardTextColor() string {
	return FindColor(LetterboardTextColors, p.LetterboardTextColorID).Value
}
