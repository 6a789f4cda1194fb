// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Every colour adapts to light and dark terminals.
var (
	Brand      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"}
	Accent     = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#C4B5FD"}
	Success    = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}
	Danger     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	DangerDeep = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#7F1D1D"}

	Surface   = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#1C1B22"}
	Border    = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#3F3F46"}
	Fg        = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#E4E4E7"}
	FgSubtle  = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A1A1AA"}
	FgMuted   = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#71717A"}
	FgInverse = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#18181B"}
)

// Bubble colours, one pair per kind of transcript entry.
var (
	UserFg       = lipgloss.AdaptiveColor{Light: "#0C4A6E", Dark: "#E0F2FE"}
	UserBorder   = lipgloss.AdaptiveColor{Light: "#38BDF8", Dark: "#0284C7"}
	ReplyFg      = lipgloss.AdaptiveColor{Light: "#3B0764", Dark: "#F3E8FF"}
	ReplyBorder  = Accent
	NoticeFg     = lipgloss.AdaptiveColor{Light: "#7F1D1D", Dark: "#FECACA"}
	NoticeBorder = Danger
)
