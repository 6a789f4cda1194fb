// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/flowchat/internal/model"
	"github.com/jeranaias/flowchat/internal/workflow"
)

// FailureNotice is the single assistant message appended when an exchange fails.
const FailureNotice = "Could not reach the workflow. Check that the n8n webhook is reachable."

// Sender delivers one message to a workflow. *workflow.Client implements it.
type Sender interface {
	Send(ctx context.Context, target workflow.Target, text string, at time.Time) (workflow.Reply, error)
}

// Exchange is one submitted message waiting for its reply.
type Exchange struct {
	Target workflow.Target
	Text   string
	At     time.Time

	// err is set when the exchange cannot be dispatched at all.
	err error
}

// Client holds the conversation state for one process.
//
// At most one exchange is in flight at a time: Submit refuses while a
// previous exchange has not been completed.
type Client struct {
	mu         sync.Mutex
	transcript *model.Transcript
	draft      string
	pending    bool
	selected   string

	registry *workflow.Registry
	sender   Sender
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a client with the registry's default workflow selected.
func New(registry *workflow.Registry, sender Sender, logger zerolog.Logger) *Client {
	c := &Client{
		transcript: model.NewTranscript(),
		registry:   registry,
		sender:     sender,
		logger:     logger.With().Str("component", "session").Logger(),
		now:        time.Now,
	}
	if def, ok := registry.Default(); ok {
		c.selected = def.ID
	}
	return c
}

// SetClock replaces the time source used to stamp messages and requests.
func (c *Client) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// =============================================================================
// STATE ACCESSORS
// =============================================================================

// SetDraft replaces the composer text.
func (c *Client) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the composer text.
func (c *Client) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Select makes id the active workflow. The selection is not validated here;
// an unknown ID fails at submission.
func (c *Client) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
}

// Selected returns the active workflow ID.
func (c *Client) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// SelectedTarget returns the active workflow target.
func (c *Client) SelectedTarget() (workflow.Target, error) {
	return c.registry.Get(c.Selected())
}

// Registry returns the workflow registry.
func (c *Client) Registry() *workflow.Registry {
	return c.registry
}

// Pending reports whether an exchange is in flight.
func (c *Client) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Transcript returns a copy of the messages so far.
func (c *Client) Transcript() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Messages()
}

// LastReply returns the most recent workflow reply. Failure notices are
// skipped.
func (c *Client) LastReply() (model.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.LastReply()
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit turns the draft into a user message and marks the client pending.
// It returns false, and changes nothing, when the draft is blank or an
// exchange is already pending.
func (c *Client) Submit() (*Exchange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(c.draft)
	if text == "" || c.pending {
		return nil, false
	}

	msg := model.NewUserMessage(text)
	msg.Timestamp = c.now()
	c.transcript.Append(msg)
	c.draft = ""
	c.pending = true

	ex := &Exchange{Text: text, At: msg.Timestamp}
	target, err := c.registry.Get(c.selected)
	if err != nil {
		ex.err = fmt.Errorf("internal: workflow %q: %w", c.selected, err)
		c.logger.Error().Err(ex.err).Msg("WORKFLOW_ERROR")
	}
	ex.Target = target
	return ex, true
}

// Dispatch sends the exchange and returns the reply text. It does not touch
// client state and may run on any goroutine.
func (c *Client) Dispatch(ctx context.Context, ex *Exchange) (string, error) {
	if ex.err != nil {
		return "", ex.err
	}
	reply, err := c.sender.Send(ctx, ex.Target, ex.Text, ex.At)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

// Complete records the outcome of ex and clears the pending flag.
// A failure of any kind appends FailureNotice; details only go to the log.
func (c *Client) Complete(ex *Exchange, reply string, err error) model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	var msg model.Message
	if err != nil {
		c.logger.Warn().Str("workflow", ex.Target.ID).Err(err).Msg("WORKFLOW_ERROR")
		msg = model.NewNotice(FailureNotice)
	} else {
		msg = model.NewAssistantMessage(reply, ex.Target.Name)
	}
	msg.Timestamp = c.now()
	c.transcript.Append(msg)
	c.pending = false
	return msg
}

// Send runs Submit, Dispatch and Complete in sequence. It returns false
// when nothing was submitted.
func (c *Client) Send(ctx context.Context) (model.Message, bool) {
	ex, ok := c.Submit()
	if !ok {
		return model.Message{}, false
	}
	reply, err := c.Dispatch(ctx, ex)
	return c.Complete(ex, reply, err), true
}
