// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/flowchat/internal/ui/styles"
)

// VerifyingText is shown while the access check runs.
const VerifyingText = "Verifying access..."

// Verifying is the screen shown until the access verdict is known.
type Verifying struct {
	spinner spinner.Model

	width  int
	height int
	theme  *styles.Theme
}

// NewVerifying creates the verifying screen.
func NewVerifying(theme *styles.Theme) Verifying {
	s := spinner.New()
	s.Spinner = styles.LineSpinner.Spinner()
	s.Style = theme.Spinner
	return Verifying{spinner: s, theme: theme}
}

// SetSize updates the dimensions.
func (v *Verifying) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Init starts the indicator animation.
func (v Verifying) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update advances the indicator.
func (v Verifying) Update(msg tea.Msg) (Verifying, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the screen centered in the terminal.
func (v Verifying) View() string {
	brand := v.theme.HeaderBrand.Render(BrandTitle) + " " +
		v.theme.HeaderSubtitle.Render("/ "+BrandSubtitle)
	status := v.spinner.View() + " " + v.theme.VerifyText.Render(VerifyingText)

	content := lipgloss.JoinVertical(lipgloss.Center, brand, "", status)
	return place(v.width, v.height, content)
}

// place centers content when the size is known.
func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
