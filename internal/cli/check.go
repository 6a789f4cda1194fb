// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/flowchat/internal/access"
)

func newCheckCommand(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "run the access check once and print the verdict",
		Long: `Looks up your public IP address and compares it with the allow-list.
Exits 0 when access is allowed and 2 when it is denied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := access.NewGate(app.Config, app.Lookup, app.Logger)
			v := gate.Resolve(cmd.Context())
			s := v.Summary()

			if jsonOut {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(s); err != nil {
					return fmt.Errorf("failed to encode verdict: %w", err)
				}
			} else {
				printVerdict(app, v)
			}

			if !s.Allowed {
				return &ExitCodeError{Code: ExitDenied, Err: ErrAccessDenied}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the verdict as JSON")
	return cmd
}

func printVerdict(app *App, v access.Verdict) {
	switch v := v.(type) {
	case access.Allowed:
		successColor.Fprintln(app.Out, "Access allowed")
		fmt.Fprintf(app.Out, "  Your IP: %s\n", v.Address)
	case access.Denied:
		printDenied(app.Out, v)
	default:
		warnColor.Fprintln(app.Out, "Access check did not complete")
	}
}
