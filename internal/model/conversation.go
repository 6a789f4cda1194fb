// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Transcript is an append-only ordered sequence of messages.
//
// There is deliberately no way to edit, remove or reorder a message: the
// only mutation is Append. The zero value is an empty transcript ready to use.
// A Transcript is not safe for concurrent use; its owner serializes access.
type Transcript struct {
	messages []Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0, 16)}
}

// Append adds msg at the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// IsEmpty reports whether no message has been appended yet.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0
}

// Messages returns a copy of the messages in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// At returns the i-th message.
func (t *Transcript) At(i int) Message {
	return t.messages[i]
}

// Last returns the most recent message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// LastReply returns the most recent workflow reply, skipping user messages
// and failure notices.
func (t *Transcript) LastReply() (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if m := t.messages[i]; m.Role == RoleAssistant && !m.Notice {
			return m, true
		}
	}
	return Message{}, false
}
