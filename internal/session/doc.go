// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the in-memory conversation with the workflows.
//
// A submission is split in three steps so the TUI can run the network call
// as a command while keeping state changes on its update loop:
//
//	ex, ok := client.Submit()              // append user message, set pending
//	reply, err := client.Dispatch(ctx, ex) // one POST, any goroutine
//	client.Complete(ex, reply, err)        // append reply or failure notice
//
// Line-mode callers use Send, which does all three.
package session
