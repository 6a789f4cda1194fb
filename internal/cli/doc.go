// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the flowchat command line.
//
// Commands:
//
//	flowchat               full-screen chat (default)
//	flowchat check         run the access check; exit 2 when denied
//	flowchat send MSG...   send one message and print the reply
//	flowchat chat          line-mode chat
//	flowchat config ...    show, path, init
//	flowchat doctor        report configuration warnings
//	flowchat version       print version information
//
// Every command except version and config init loads the configuration
// first; an invalid configuration is a fatal error.
package cli
