// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for flowchat.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AccessConfig: IP allow-list and lookup service settings
//   - WorkflowConfig: One of the three workflow endpoints
//   - AuthConfig: Static Basic credentials
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (N8N_*, FLOWCHAT_*)
//   - --config PATH, or ~/.flowchat/config.toml
//   - ~/.flowchat/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gate := access.NewGate(cfg, nil)
//
// There is no global instance: the Config returned by Load is passed
// explicitly to every component.
package config
