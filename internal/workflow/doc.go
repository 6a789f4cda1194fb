// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workflow talks to the n8n webhook endpoints.
//
// A Registry holds the three configured Targets. A Client posts one JSON
// message per call:
//
//	{"message": "...", "timestamp": "2025-01-02T03:04:05.678Z", "workflow": "job-offer"}
//
// and extracts the display text from the reply. Basic credentials are
// attached only when both username and password are configured.
package workflow
