// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/flowchat/internal/config"
	"github.com/jeranaias/flowchat/internal/session"
	"github.com/jeranaias/flowchat/internal/ui/components"
	"github.com/jeranaias/flowchat/internal/ui/styles"
)

const (
	// Placeholder is shown in the empty composer.
	Placeholder = "Type your message..."

	// EmptyStateTitle is shown when the transcript is empty.
	EmptyStateTitle = "Start a conversation"

	// chromeHeight is the number of lines used by everything but the
	// transcript: header, selector, input border, input, caption, status bar.
	chromeHeight = 6
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	client *session.Client

	// Styling
	theme    *styles.Theme
	markdown *markdownRenderer // nil when markdown rendering is disabled

	timeFormat string

	// Dimensions
	width  int
	height int

	// Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	header   *components.Header
	tabs     *components.WorkflowTabs
	status   *components.StatusBar
	keyMap   KeyMap

	// In-flight exchange, nil when idle.
	exchange  *session.Exchange
	cancelMgr *cancelManager

	flashID int

	// copyFn writes to the system clipboard.
	copyFn func(string) error
}

// New creates a chat model over client.
func New(cfg *config.Config, client *session.Client, theme *styles.Theme) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = Placeholder
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.CharLimit = 8192
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{}

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Spinner()
	sp.Style = theme.Typing

	tabs := components.NewWorkflowTabs(theme, client.Registry().Targets())
	tabs.Selected = client.Selected()

	m := Model{
		client:     client,
		theme:      theme,
		timeFormat: cfg.UI.TimeFormat,
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		header:     components.NewHeader(theme),
		tabs:       tabs,
		status:     components.NewStatusBar(theme),
		keyMap:     DefaultKeyMap(),
		cancelMgr:  newCancelManager(),
		copyFn:     clipboard.WriteAll,
	}
	if m.timeFormat == "" {
		m.timeFormat = config.DefaultTimeFormat
	}
	if cfg.UI.Markdown {
		m.markdown = newMarkdownRenderer(theme.IsDark)
	}
	m.updateViewport()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// View renders the chat.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Client returns the conversation client.
func (m *Model) Client() *session.Client {
	return m.client
}

// IsPending reports whether an exchange is in flight.
func (m *Model) IsPending() bool {
	return m.exchange != nil
}

// Draft returns the composer text.
func (m *Model) Draft() string {
	return m.input.Value()
}
