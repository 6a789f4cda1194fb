// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Role: Message author (user, assistant)
//   - Message: A single transcript entry with a UUIDv7 identifier
//   - Transcript: Append-only ordered list of messages
//
// Transcripts live for the lifetime of the process only; nothing in this
// package persists messages.
package model
