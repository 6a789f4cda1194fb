// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/flowchat/internal/session"
	"github.com/jeranaias/flowchat/internal/util"
)

// =============================================================================
// LINE EDITING
// =============================================================================

// ChatCLI provides line editing and in-memory history for the chat REPL.
// History is never written to disk.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI creates a new ChatCLI.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &ChatCLI{line: line}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close restores the terminal.
func (c *ChatCLI) Close() {
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "line-mode chat for terminals without full-screen support",
		Long: `Starts an interactive prompt. Type a message and press enter to send it.

Commands:
  /workflows     list workflows
  /workflow ID   switch workflow
  /quit          exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveGate(cmd.Context(), app); err != nil {
				return err
			}

			s := newSession(app)
			repl := NewChatCLI()
			defer repl.Close()

			printWorkflows(app.Out, s)
			mutedColor.Fprintln(app.Out, "Type /quit to exit.")

			for {
				input, err := repl.ReadInput(promptFor(s))
				if err != nil {
					if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
						return nil
					}
					return fmt.Errorf("failed to read input: %w", err)
				}
				if quit := processLine(cmd.Context(), app, s, input); quit {
					return nil
				}
			}
		},
	}
}

func promptFor(s *session.Client) string {
	return s.Selected() + "> "
}

// lineContext scopes one request. It keeps parent's values but not its
// cancellation, and an interrupt cancels only the request in flight, so the
// session stays usable afterwards.
func lineContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.WithoutCancel(parent), os.Interrupt)
}

// processLine handles one line of REPL input and reports whether to exit.
func processLine(ctx context.Context, app *App, s *session.Client, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if strings.HasPrefix(input, "/") {
		return handleSlashCommand(app, s, input)
	}

	s.SetDraft(input)
	sendCtx, stop := lineContext(ctx)
	msg, ok := s.Send(sendCtx)
	stop()
	if !ok {
		return false
	}
	if msg.Notice {
		errorColor.Fprintln(app.Out, msg.Content)
		return false
	}

	labelColor.Fprintf(app.Out, "%s (%s)\n", msg.Role.DisplayName(), msg.Workflow)
	displayReply(app.Out, msg.Content, app.Config.UI.Markdown)
	return false
}

func handleSlashCommand(app *App, s *session.Client, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit", "/q":
		return true
	case "/workflows":
		printWorkflows(app.Out, s)
	case "/workflow", "/w":
		if len(fields) < 2 {
			warnColor.Fprintln(app.Out, "usage: /workflow ID")
			return false
		}
		target, err := s.Registry().Get(fields[1])
		if err != nil {
			warnColor.Fprintf(app.Out, "unknown workflow %q\n", fields[1])
			return false
		}
		s.Select(target.ID)
		successColor.Fprintf(app.Out, "%s active\n", target.Name)
	default:
		warnColor.Fprintf(app.Out, "unknown command %s\n", fields[0])
	}
	return false
}

func printWorkflows(w io.Writer, s *session.Client) {
	for _, t := range s.Registry().Targets() {
		marker := "  "
		if t.ID == s.Selected() {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s %s\n", marker, util.PadRight(t.ID, 18), t.Name)
	}
}
