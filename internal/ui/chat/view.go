// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/flowchat/internal/model"
	"github.com/jeranaias/flowchat/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header + selector + transcript (viewport) + input (border, line,
// caption) + status bar. The viewport height is set in handleResize from
// chromeHeight; keep both in sync.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.tabs.View(),
		m.viewport.View(),
		m.renderInput(),
		m.status.View(),
	)
}

func (m Model) renderInput() string {
	line := m.input.View()
	if m.exchange != nil {
		line = m.theme.InputPlaceholder.Render("> waiting for reply...")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.InputContainer.Width(m.width).Render(line),
		m.tabs.ActiveLine(),
	)
}

// updateViewport re-renders the transcript into the viewport, keeping the
// view pinned to the bottom when it was already there.
func (m *Model) updateViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	messages := m.client.Transcript()
	if len(messages) == 0 {
		return m.renderEmptyState()
	}

	blocks := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		blocks = append(blocks, m.renderMessage(msg))
	}
	if m.exchange != nil {
		blocks = append(blocks, m.renderTyping())
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderEmptyState() string {
	lines := []string{m.theme.EmptyState.Render(EmptyStateTitle)}
	if t, err := m.client.SelectedTarget(); err == nil {
		lines = append(lines, m.theme.MessageTime.Render("Messages go to the "+t.Name+" workflow."))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return content
	}
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderMessage(msg model.Message) string {
	header := m.theme.MessageAuthor.Render(msg.Role.DisplayName()) + " " +
		m.theme.MessageTime.Render(msg.Timestamp.Format(m.timeFormat))
	if msg.Workflow != "" {
		header += " " + m.theme.WorkflowLabel.Render(util.TruncateWidth(msg.Workflow, 32))
	}

	width := m.contentWidth()
	var body string
	switch {
	case msg.IsUser():
		w := util.StringWidth(msg.Content) + 2
		if w > width {
			w = width
		}
		body = m.theme.UserBubble.Width(w).Render(msg.Content)
	case msg.Notice:
		body = m.theme.NoticeBubble.Render(msg.Content)
	case m.markdown != nil:
		body = m.theme.AssistantBubble.Render(m.markdown.render(msg.ID, msg.Content))
	default:
		body = m.theme.AssistantBubble.Width(width).Render(msg.Content)
	}
	return header + "\n" + body
}

func (m Model) renderTyping() string {
	name := "Assistant"
	if m.exchange != nil && m.exchange.Target.Name != "" {
		name = m.exchange.Target.Name
	}
	return m.theme.MessageAuthor.Render("Assistant") + " " +
		m.spinner.View() + " " + m.theme.MessageTime.Render(name+" is typing")
}

// contentWidth is the wrap width of a message body inside its bubble.
func (m Model) contentWidth() int {
	w := m.width - 10
	if w < 20 {
		w = 20
	}
	return w
}
