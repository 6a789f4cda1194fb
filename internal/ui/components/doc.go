// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the flowchat TUI.
//
// # Components
//
//   - Verifying: spinner screen shown while the access check runs
//   - Denied: access denied screen with diagnostic and detected address
//   - Header: single-line application header
//   - WorkflowTabs: workflow selector and "<name> active" caption
//   - StatusBar: keyboard shortcuts and short notices
//
// All components take a *styles.Theme and render plain strings.
package components
