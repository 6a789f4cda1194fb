// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model holds the transcript types shared by the TUI and the CLI.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string { return string(r) }

// DisplayName is the author label shown above a message.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	}
	return string(r)
}

// Message is one transcript entry. It is never modified after it has been
// appended.
type Message struct {
	ID        string    `json:"id"` // UUIDv7
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Workflow names the workflow that answered. Set on replies only.
	Workflow string `json:"workflow,omitempty"`

	// Notice marks an assistant-authored entry that reports a failed
	// exchange instead of carrying a reply.
	Notice bool `json:"notice,omitempty"`
}

// NewMessage stamps a message with a fresh ID and the current time.
func NewMessage(role Role, content string) Message {
	return Message{ID: newID(), Role: role, Content: content, Timestamp: time.Now()}
}

// NewUserMessage records text the user submitted.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage records a reply from the named workflow.
func NewAssistantMessage(content, workflow string) Message {
	m := NewMessage(RoleAssistant, content)
	m.Workflow = workflow
	return m
}

// NewNotice records a failed exchange.
func NewNotice(content string) Message {
	m := NewMessage(RoleAssistant, content)
	m.Notice = true
	return m
}

// IsUser reports whether the user wrote m.
func (m Message) IsUser() bool { return m.Role == RoleUser }

// newID returns a UUIDv7, which sorts by creation time.
func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
