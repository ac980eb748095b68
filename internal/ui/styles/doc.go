// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the typebuddy pad.

All colors use Lip Gloss AdaptiveColor so the pad reads on both light and
dark terminals. The ui.theme setting can pin the choice instead of relying
on terminal detection.

# Color System (colors.go)

	Purple  - Active mode tab, expression border
	Cyan    - Header, canonical expressions
	Emerald - Results
	Rose    - Evaluation errors
	Amber   - Graph trace and flash messages

The key colour from the user's preferences is applied to suggestion chips
and key hints, always paired with its matching text colour.

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme, p.ButtonColor(), p.ButtonTextColor())
	theme.SetSize(msg.Width, msg.Height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// hide the graph panel
	}
*/
package styles
