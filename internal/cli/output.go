// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/util"
)

// =============================================================================
// COLORS
// =============================================================================

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.FgCyan)
	mutedColor   = color.New(color.Faint)
)

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, util.OneLine(err.Error()))
}

func printDenied(w io.Writer, v access.Denied) {
	errorColor.Fprintln(w, "Access denied")
	fmt.Fprintf(w, "  %s\n", util.OneLine(v.Diagnostic))
	if v.Address != "" {
		fmt.Fprintf(w, "  Your IP: %s\n", v.Address)
	}
	mutedColor.Fprintln(w, "  Contact your system administrator to request access.")
}

// =============================================================================
// TERMINAL
// =============================================================================

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 80.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width >= 40 {
			return width
		}
	}
	return 80
}

// =============================================================================
// MARKDOWN
// =============================================================================

// renderMarkdown renders content for terminal display, returning content
// unchanged when rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// displayReply writes a reply, rendering markdown only for terminals so that
// piped output stays plain.
func displayReply(w io.Writer, reply string, markdown bool) {
	if markdown && isTerminal(w) {
		fmt.Fprint(w, renderMarkdown(reply, terminalWidth(w)-4))
		return
	}
	fmt.Fprintln(w, strings.TrimRight(reply, "\n"))
}
