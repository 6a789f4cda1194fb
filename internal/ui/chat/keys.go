// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit       key.Binding
	NextWorkflow key.Binding
	PrevWorkflow key.Binding
	Workflow1    key.Binding
	Workflow2    key.Binding
	Workflow3    key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Copy         key.Binding
	Cancel       key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NextWorkflow: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next workflow"),
		),
		PrevWorkflow: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous workflow"),
		),
		Workflow1: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("M-1", "first workflow"),
		),
		Workflow2: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("M-2", "second workflow"),
		),
		Workflow3: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("M-3", "third workflow"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last reply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "cancel / quit"),
		),
	}
}

// workflowIndex returns which direct-select binding matched, or -1.
func (k KeyMap) workflowIndex(msg tea.KeyMsg) int {
	for i, b := range []key.Binding{k.Workflow1, k.Workflow2, k.Workflow3} {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
