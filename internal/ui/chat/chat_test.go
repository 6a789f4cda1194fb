// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/flowchat/internal/config"
	"github.com/jeranaias/flowchat/internal/model"
	"github.com/jeranaias/flowchat/internal/session"
	"github.com/jeranaias/flowchat/internal/ui/styles"
	"github.com/jeranaias/flowchat/internal/workflow"
)

type stubSender struct {
	reply string
	err   error
}

func (s stubSender) Send(ctx context.Context, target workflow.Target, text string, at time.Time) (workflow.Reply, error) {
	if s.err != nil {
		return workflow.Reply{}, s.err
	}
	return workflow.Reply{Text: s.reply}, nil
}

func newTestModel(t *testing.T, sender session.Sender) Model {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Markdown = false
	client := session.New(workflow.NewRegistry(cfg), sender, zerolog.Nop())

	m := New(cfg, client, styles.NewTheme())
	m.copyFn = func(string) error { return nil }
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestChat_EmptyState(t *testing.T) {
	m := newTestModel(t, stubSender{})
	view := ansi.Strip(m.View())
	assert.Contains(t, view, EmptyStateTitle)
	assert.Contains(t, view, "Job offer active")
}

func TestChat_SubmitAndReply(t *testing.T) {
	m := newTestModel(t, stubSender{reply: "Hi there"})
	m = typeText(m, "Hello")
	assert.Equal(t, "Hello", m.Draft())

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, m.IsPending())
	assert.Empty(t, m.Draft())
	assert.Len(t, m.client.Transcript(), 1)
	assert.Contains(t, ansi.Strip(m.View()), "is typing")

	// The composer ignores input while pending.
	m = typeText(m, "more")
	assert.Empty(t, m.Draft())

	ex := m.exchange
	text, err := m.client.Dispatch(context.Background(), ex)
	require.NoError(t, err)
	m, _ = m.Update(ReplyMsg{Exchange: ex, Text: text})

	assert.False(t, m.IsPending())
	msgs := m.client.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Job offer", msgs[1].Workflow)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Hi there")
	assert.Contains(t, view, "Assistant")
	assert.Contains(t, view, "Job offer")

	// Composer is enabled again.
	m = typeText(m, "next")
	assert.Equal(t, "next", m.Draft())
}

func TestChat_BlankSubmitIsIgnored(t *testing.T) {
	m := newTestModel(t, stubSender{reply: "x"})
	m = typeText(m, "   ")
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.IsPending())
	assert.Empty(t, m.client.Transcript())
}

func TestChat_FailureShowsNotice(t *testing.T) {
	m := newTestModel(t, stubSender{err: &workflow.StatusError{Status: 500}})
	m = typeText(m, "Hello")
	m, _ = press(m, tea.KeyEnter)

	ex := m.exchange
	_, err := m.client.Dispatch(context.Background(), ex)
	m, _ = m.Update(ReplyMsg{Exchange: ex, Err: err})

	assert.False(t, m.IsPending())
	assert.Contains(t, ansi.Strip(m.View()), "Could not reach the workflow")
}

func TestChat_CtrlC(t *testing.T) {
	t.Run("idle quits", func(t *testing.T) {
		m := newTestModel(t, stubSender{})
		_, cmd := press(m, tea.KeyCtrlC)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("pending cancels", func(t *testing.T) {
		m := newTestModel(t, stubSender{})
		m = typeText(m, "Hello")
		m, _ = press(m, tea.KeyEnter)
		require.True(t, m.IsPending())

		m, cmd := press(m, tea.KeyCtrlC)
		assert.Nil(t, cmd, "cancel must not quit")

		ex := m.exchange
		m, _ = m.Update(ReplyMsg{Exchange: ex, Err: context.Canceled})
		assert.False(t, m.IsPending())
		last := m.client.Transcript()[1]
		assert.Equal(t, session.FailureNotice, last.Content)
	})
}

func TestChat_WorkflowSelection(t *testing.T) {
	m := newTestModel(t, stubSender{})
	assert.Equal(t, config.WorkflowJobOffer, m.client.Selected())

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, config.WorkflowSocialContent, m.client.Selected())
	assert.Contains(t, ansi.Strip(m.View()), "Social content active")

	m, _ = press(m, tea.KeyShiftTab)
	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, config.WorkflowIdeaImprovement, m.client.Selected())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	assert.Equal(t, config.WorkflowJobOffer, m.client.Selected())
}

func TestChat_CopyLastReply(t *testing.T) {
	m := newTestModel(t, stubSender{reply: "copy me"})

	m, _ = press(m, tea.KeyCtrlY)
	assert.Equal(t, "Nothing to copy", m.status.Flash)

	var copied string
	m.copyFn = func(s string) error { copied = s; return nil }
	m = typeText(m, "Hello")
	m, _ = press(m, tea.KeyEnter)
	ex := m.exchange
	m, _ = m.Update(ReplyMsg{Exchange: ex, Text: "copy me"})

	m, cmd := press(m, tea.KeyCtrlY)
	assert.Equal(t, "copy me", copied)
	assert.Equal(t, "Copied", m.status.Flash)
	require.NotNil(t, cmd)

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m, _ = press(m, tea.KeyCtrlY)
	assert.Equal(t, "Clipboard unavailable", m.status.Flash)

	m, _ = m.Update(clearFlashMsg{id: m.flashID})
	assert.Empty(t, m.status.Flash)
}

func TestChat_StaleReplyIgnored(t *testing.T) {
	m := newTestModel(t, stubSender{})
	m, _ = m.Update(ReplyMsg{Exchange: &session.Exchange{}, Text: "late"})
	assert.Empty(t, m.client.Transcript())
}

func TestMarkdownRenderer(t *testing.T) {
	r := newMarkdownRenderer(true)
	r.setWidth(60)

	out := ansi.Strip(r.render("id-1", "**bold** text"))
	assert.Contains(t, out, "bold")
	assert.NotContains(t, out, "**")

	// Cached by message id.
	assert.Equal(t, r.render("id-1", "**bold** text"), r.render("id-1", "ignored"))
}
