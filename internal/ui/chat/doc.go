// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The model wraps a session.Client. Pressing enter submits the draft; the
// workflow request runs as a tea.Cmd and comes back as a ReplyMsg, which
// completes the exchange and re-enables the composer.
//
// # Key Bindings
//
//	enter        send the message
//	tab, S-tab   cycle the active workflow
//	M-1..M-3     select a workflow directly
//	PgUp, PgDn   scroll the transcript
//	C-y          copy the last reply
//	C-c          cancel the pending request, or quit when idle
package chat
