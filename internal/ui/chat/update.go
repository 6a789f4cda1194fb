// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/flowchat/internal/session"
)

const flashDuration = 2 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if m.exchange == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd

	case clearFlashMsg:
		if msg.id == m.flashID {
			m.status.Flash = ""
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = msg.Width - 6

	m.header.SetWidth(msg.Width)
	m.tabs.Width = msg.Width
	m.status.SetWidth(msg.Width)
	if m.markdown != nil {
		m.markdown.setWidth(m.contentWidth())
	}

	m.updateViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		if m.cancelMgr.cancel() {
			// The reply arrives as a failure through ReplyMsg.
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.NextWorkflow):
		return m.selectWorkflow(m.client.Registry().Next(m.client.Selected(), 1)), nil

	case key.Matches(msg, m.keyMap.PrevWorkflow):
		return m.selectWorkflow(m.client.Registry().Next(m.client.Selected(), -1)), nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		return m.copyLastReply()
	}

	if i := m.keyMap.workflowIndex(msg); i >= 0 {
		targets := m.client.Registry().Targets()
		if i < len(targets) {
			return m.selectWorkflow(targets[i].ID), nil
		}
		return m, nil
	}

	// The composer is disabled while a request is pending.
	if m.exchange != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.client.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the session and starts the exchange.
func (m Model) submit() (Model, tea.Cmd) {
	if m.exchange != nil {
		return m, nil
	}

	m.client.SetDraft(m.input.Value())
	ex, ok := m.client.Submit()
	if !ok {
		return m, nil
	}

	m.exchange = ex
	m.input.Reset()
	m.input.Blur()
	m.status.Pending = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(dispatchCmd(ctx, m.client, ex), m.spinner.Tick)
}

// dispatchCmd runs the exchange off the update loop.
func dispatchCmd(ctx context.Context, client *session.Client, ex *session.Exchange) tea.Cmd {
	return func() tea.Msg {
		text, err := client.Dispatch(ctx, ex)
		return ReplyMsg{Exchange: ex, Text: text, Err: err}
	}
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if msg.Exchange == nil || msg.Exchange != m.exchange {
		return m, nil
	}

	m.client.Complete(msg.Exchange, msg.Text, msg.Err)
	m.cancelMgr.cancel()
	m.exchange = nil
	m.status.Pending = false

	m.input.Focus()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, textinput.Blink
}

func (m Model) selectWorkflow(id string) Model {
	m.client.Select(id)
	m.tabs.Selected = id
	m.updateViewport()
	return m
}

func (m Model) copyLastReply() (Model, tea.Cmd) {
	msg, ok := m.client.LastReply()
	if !ok || msg.Content == "" {
		return m.flash("Nothing to copy")
	}
	if err := m.copyFn(msg.Content); err != nil {
		return m.flash("Clipboard unavailable")
	}
	return m.flash("Copied")
}

func (m Model) flash(text string) (Model, tea.Cmd) {
	m.flashID++
	id := m.flashID
	m.status.Flash = text
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}
