// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/flowchat/internal/ui/styles"
)

// StatusBar shows keyboard shortcuts and short-lived notices.
type StatusBar struct {
	Width   int
	Pending bool
	// Flash is a one-off notice such as "Copied"; empty hides it.
	Flash string

	theme *styles.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// SetWidth sets the rendering width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderShortcuts()
	if s.Flash != "" {
		left = s.theme.Flash.Render(s.Flash) + "  " + left
	}
	if s.Width <= 0 {
		return left
	}
	return s.theme.StatusBar.Width(s.Width).MaxHeight(1).Render(left)
}

func (s *StatusBar) renderShortcuts() string {
	type shortcut struct{ key, desc string }

	var list []shortcut
	if s.Pending {
		list = []shortcut{{"^C", "cancel"}}
	} else {
		list = []shortcut{
			{"enter", "send"},
			{"tab", "workflow"},
			{"^Y", "copy"},
			{"^C", "quit"},
		}
	}
	if s.Width > 0 && s.Width < 60 && len(list) > 2 {
		list = list[:2]
	}

	parts := make([]string, 0, len(list))
	for _, sc := range list {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
	}
	sep := lipgloss.NewStyle().Foreground(styles.Border).Render(" | ")
	return strings.Join(parts, sep)
}
