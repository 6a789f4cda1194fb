// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/ui/styles"
)

// Text shown on the access denied screen.
const (
	DeniedTitle             = "Access denied"
	DeniedDefaultDiagnostic = "your address is not authorized"
	DeniedContactHint       = "Contact your system administrator to request access."
)

// Denied renders the access denied screen for a verdict.
type Denied struct {
	Verdict access.Denied
	Version string

	width  int
	height int
	theme  *styles.Theme
}

// NewDenied creates the denied screen.
func NewDenied(theme *styles.Theme, verdict access.Denied, version string) Denied {
	return Denied{Verdict: verdict, Version: version, theme: theme}
}

// SetSize updates the dimensions.
func (d *Denied) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// deniedMinWidth keeps short diagnostics from producing a cramped box.
const deniedMinWidth = 56

// boxWidth fits the box to its widest line, without going below
// deniedMinWidth or past the terminal edge. Width includes padding but not
// the border.
func (d Denied) boxWidth(contentWidth int) int {
	style := d.theme.DeniedBox
	w := contentWidth + style.GetHorizontalPadding()
	if w < deniedMinWidth {
		w = deniedMinWidth
	}
	if d.width > 0 {
		if limit := d.width - style.GetHorizontalBorderSize(); w > limit {
			w = limit
		}
	}
	return w
}

// View renders the screen.
func (d Denied) View() string {
	diagnostic := d.Verdict.Diagnostic
	if diagnostic == "" {
		diagnostic = DeniedDefaultDiagnostic
	}

	lines := []string{
		d.theme.DeniedTitle.Render(DeniedTitle),
		"",
		d.theme.DeniedDetail.Render(diagnostic),
	}
	if d.Verdict.Address != "" {
		lines = append(lines, d.theme.DeniedDetail.Render("Your IP: "+d.Verdict.Address))
	}
	lines = append(lines, "", d.theme.DeniedHint.Render(DeniedContactHint))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	box := d.theme.DeniedBox.Width(d.boxWidth(lipgloss.Width(content))).Render(content)

	footer := d.theme.Footer.Render(BrandTitle + " " + d.Version + "  q to quit")

	return place(d.width, d.height, lipgloss.JoinVertical(lipgloss.Center, box, "", footer))
}
