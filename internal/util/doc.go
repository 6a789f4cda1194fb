// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across flowchat.
//
//   - WriteFileAtomic: temp-file-and-rename writes (config init)
//   - TruncateWidth, StringWidth, PadRight: column-aware string helpers
//     backed by go-runewidth, used for labels in the TUI and CLI
//   - OneLine: whitespace folding for single-line output
package util
