// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds every style used by the screens, plus the current terminal
// size for width-dependent layouts.
type Theme struct {
	IsDark bool

	Width  int
	Height int

	// Header and workflow selector
	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Tab            lipgloss.Style
	TabActive      lipgloss.Style
	TabKey         lipgloss.Style

	// Transcript
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	NoticeBubble    lipgloss.Style
	MessageAuthor   lipgloss.Style
	MessageTime     lipgloss.Style
	WorkflowLabel   lipgloss.Style
	EmptyState      lipgloss.Style
	Typing          lipgloss.Style

	// Composer and status bar
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	ActiveWorkflow   lipgloss.Style
	StatusBar        lipgloss.Style
	ShortcutKey      lipgloss.Style
	ShortcutDesc     lipgloss.Style
	Flash            lipgloss.Style

	// Verifying and denied screens
	Spinner      lipgloss.Style
	VerifyText   lipgloss.Style
	DeniedBox    lipgloss.Style
	DeniedTitle  lipgloss.Style
	DeniedDetail lipgloss.Style
	DeniedHint   lipgloss.Style
	Footer       lipgloss.Style
}

// NewTheme builds a theme for the current terminal background.
func NewTheme() *Theme {
	t := &Theme{IsDark: termenv.HasDarkBackground()}
	t.chromeStyles()
	t.transcriptStyles()
	t.composerStyles()
	t.gateStyles()
	return t
}

func (t *Theme) chromeStyles() {
	t.Header = lipgloss.NewStyle().Background(Surface).Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().Foreground(Brand).Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().Foreground(FgSubtle).Italic(true)

	t.Tab = lipgloss.NewStyle().Foreground(FgSubtle).Padding(0, 1)
	t.TabActive = t.Tab.
		Foreground(FgInverse).
		Background(Accent).
		Bold(true)
	t.TabKey = lipgloss.NewStyle().Foreground(FgMuted)
}

func (t *Theme) transcriptStyles() {
	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	// User messages sit on the right, everything else on the left.
	t.UserBubble = bubble.
		Foreground(UserFg).
		BorderForeground(UserBorder).
		MarginLeft(4)
	t.AssistantBubble = bubble.
		Foreground(ReplyFg).
		BorderForeground(ReplyBorder).
		MarginRight(4)
	t.NoticeBubble = lipgloss.NewStyle().
		Foreground(NoticeFg).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(NoticeBorder).
		PaddingLeft(2).
		MarginRight(4)

	t.MessageAuthor = lipgloss.NewStyle().Foreground(Fg).Bold(true)
	t.MessageTime = lipgloss.NewStyle().Foreground(FgMuted)
	t.WorkflowLabel = lipgloss.NewStyle().Foreground(Accent).Italic(true)
	t.EmptyState = lipgloss.NewStyle().Foreground(FgMuted).Italic(true)
	t.Typing = lipgloss.NewStyle().Foreground(Accent)
}

func (t *Theme) composerStyles() {
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Border).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Brand).Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(FgMuted).Italic(true)
	t.ActiveWorkflow = lipgloss.NewStyle().Foreground(FgSubtle).PaddingLeft(1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(FgSubtle).
		Background(Surface).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Brand).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(FgMuted)
	t.Flash = lipgloss.NewStyle().Foreground(Success)
}

func (t *Theme) gateStyles() {
	t.Spinner = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	t.VerifyText = lipgloss.NewStyle().Foreground(FgSubtle)

	t.DeniedBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(DangerDeep).
		Padding(1, 3)
	t.DeniedTitle = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	t.DeniedDetail = lipgloss.NewStyle().Foreground(Fg)
	t.DeniedHint = lipgloss.NewStyle().Foreground(FgMuted).Italic(true)
	t.Footer = lipgloss.NewStyle().Foreground(FgMuted)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode buckets the terminal width.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-99 columns
	LayoutWide                     // >= 100 columns
)

// GetLayoutMode returns the layout bucket for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutNarrow
	case t.Width < 100:
		return LayoutMedium
	default:
		return LayoutWide
	}
}
