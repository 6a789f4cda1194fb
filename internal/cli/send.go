// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/flowchat/internal/session"
	"github.com/jeranaias/flowchat/internal/workflow"
)

// ErrEmptyMessage is returned when send is given only whitespace.
var ErrEmptyMessage = errors.New("message is empty")

// newSession builds a conversation client from the app configuration.
func newSession(app *App) *session.Client {
	registry := workflow.NewRegistry(app.Config)
	client := workflow.NewClient(app.Config, app.Logger)
	return session.New(registry, client, app.Logger)
}

func newSendCommand(app *App) *cobra.Command {
	var workflowID string

	cmd := &cobra.Command{
		Use:   "send [--workflow ID] MESSAGE...",
		Short: "send one message to a workflow and print the reply",
		Long: `Runs the access check, then posts MESSAGE to the selected workflow.
The reply is rendered as markdown when stdout is a terminal.

Examples:
  flowchat send "Summarize this job offer: ..."
  flowchat send --workflow idea-improvement "A CLI that chats with n8n"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return &ExitCodeError{Code: ExitError, Err: ErrEmptyMessage}
			}

			if _, err := resolveGate(cmd.Context(), app); err != nil {
				return err
			}

			s := newSession(app)
			if workflowID != "" {
				if _, err := s.Registry().Get(workflowID); err != nil {
					return fmt.Errorf("%q: %w", workflowID, err)
				}
				s.Select(workflowID)
			}

			s.SetDraft(text)
			msg, _ := s.Send(cmd.Context())
			if msg.Notice {
				return &ExitCodeError{Code: ExitError, Err: errors.New(msg.Content)}
			}

			displayReply(app.Out, msg.Content, app.Config.UI.Markdown)
			return nil
		},
	}
	cmd.Flags().StringVarP(&workflowID, "workflow", "w", "", "workflow ID (default: the first configured workflow)")
	return cmd
}
