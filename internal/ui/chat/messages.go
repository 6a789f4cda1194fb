// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/flowchat/internal/session"

// ReplyMsg carries the outcome of a workflow exchange back to the update loop.
type ReplyMsg struct {
	Exchange *session.Exchange
	Text     string
	Err      error
}

// clearFlashMsg hides the status bar notice with the matching id.
type clearFlashMsg struct {
	id int
}
