// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/ui/styles"
	"github.com/jeranaias/flowchat/internal/workflow"
)

func TestVerifying_View(t *testing.T) {
	v := NewVerifying(styles.NewTheme())
	v.SetSize(80, 24)

	view := ansi.Strip(v.View())
	assert.Contains(t, view, BrandTitle)
	assert.Contains(t, view, BrandSubtitle)
	assert.Contains(t, view, VerifyingText)
	assert.NotNil(t, v.Init())
}

func TestDenied_View(t *testing.T) {
	theme := styles.NewTheme()

	t.Run("with address", func(t *testing.T) {
		d := NewDenied(theme, access.Denied{
			Reason:     access.ReasonNotAllowed,
			Address:    "198.51.100.7",
			Diagnostic: "address 198.51.100.7 is not authorized",
		}, "1.2.3")
		d.SetSize(100, 30)

		view := ansi.Strip(d.View())
		assert.Contains(t, view, DeniedTitle)
		assert.Contains(t, view, "Your IP: 198.51.100.7")
		assert.Contains(t, view, DeniedContactHint)
		assert.Contains(t, view, "1.2.3")
	})

	t.Run("hint stays on one line", func(t *testing.T) {
		for _, width := range []int{80, 100} {
			d := NewDenied(theme, access.Denied{
				Reason:     access.ReasonNotAllowed,
				Address:    "2001:db8::1",
				Diagnostic: "address 2001:db8::1 is not authorized",
			}, "dev")
			d.SetSize(width, 30)
			assert.Contains(t, ansi.Strip(d.View()), DeniedContactHint, "width %d", width)
		}
	})

	t.Run("narrow terminal", func(t *testing.T) {
		d := NewDenied(theme, access.Denied{Reason: access.ReasonNotAllowed, Address: "198.51.100.7"}, "dev")
		d.SetSize(40, 30)
		for _, line := range strings.Split(d.View(), "\n") {
			assert.LessOrEqual(t, ansi.StringWidth(line), 40)
		}
	})

	t.Run("without address", func(t *testing.T) {
		d := NewDenied(theme, access.Denied{Reason: access.ReasonNoRule}, "dev")

		view := ansi.Strip(d.View())
		assert.Contains(t, view, DeniedDefaultDiagnostic)
		assert.NotContains(t, view, "Your IP")
	})
}

func TestWorkflowTabs(t *testing.T) {
	targets := []workflow.Target{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
		{ID: "c", Name: "Gamma"},
	}
	theme := styles.NewTheme()
	theme.SetSize(120, 30)
	tabs := NewWorkflowTabs(theme, targets)
	tabs.Selected = "b"

	view := ansi.Strip(tabs.View())
	for _, name := range []string{"1", "Alpha", "2", "Beta", "3", "Gamma"} {
		assert.Contains(t, view, name)
	}

	// Shortcut numbers are dropped below the wide layout.
	theme.SetSize(80, 30)
	assert.NotContains(t, ansi.Strip(tabs.View()), "1")
	assert.Equal(t, "Beta active", strings.TrimSpace(ansi.Strip(tabs.ActiveLine())))

	tabs.Selected = "missing"
	assert.Empty(t, tabs.ActiveLine())
}

func TestStatusBar(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)

	view := ansi.Strip(bar.View())
	assert.Contains(t, view, "send")
	assert.Contains(t, view, "quit")

	bar.Pending = true
	bar.Flash = "Copied"
	view = ansi.Strip(bar.View())
	assert.Contains(t, view, "cancel")
	assert.Contains(t, view, "Copied")
	assert.NotContains(t, view, "send")
}

func TestHeader(t *testing.T) {
	theme := styles.NewTheme()
	theme.SetSize(80, 24)
	h := NewHeader(theme)
	h.SetWidth(80)
	view := ansi.Strip(h.View())
	assert.Contains(t, view, BrandTitle)
	assert.Contains(t, view, BrandSubtitle)

	theme.SetSize(40, 24)
	h.SetWidth(40)
	view = ansi.Strip(h.View())
	assert.Contains(t, view, BrandTitle)
	assert.NotContains(t, view, BrandSubtitle)
}
