// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/flowchat/internal/ui/styles"
	"github.com/jeranaias/flowchat/internal/util"
)

// Brand strings shown in the header and on the verifying screen.
const (
	BrandTitle    = "WORKFLOWS"
	BrandSubtitle = "n8n assistant"
)

// Header renders the single-line application header.
type Header struct {
	Width int
	theme *styles.Theme
}

// NewHeader creates a new header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// SetWidth sets the rendering width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	title := h.theme.HeaderBrand.Render(BrandTitle)
	if h.theme.GetLayoutMode() != styles.LayoutNarrow {
		title += " " + h.theme.HeaderSubtitle.Render("/ "+BrandSubtitle)
	}

	if h.Width <= 0 {
		return title
	}
	if lipgloss.Width(title) > h.Width-2 {
		title = h.theme.HeaderBrand.Render(util.TruncateWidth(BrandTitle, h.Width-2))
	}
	return h.theme.Header.Width(h.Width).Render(title)
}
