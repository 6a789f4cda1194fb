// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access implements the startup IP gate.
//
// A Gate looks up the caller's public address once, compares it with a
// static allow-list and produces a Verdict: Pending, Allowed or Denied.
//
// Usage:
//
//	gate := access.NewGate(cfg, nil, logger)
//	switch v := gate.Resolve(ctx).(type) {
//	case access.Allowed:
//	    // show the chat
//	case access.Denied:
//	    fmt.Println(v.Diagnostic)
//	}
package access
