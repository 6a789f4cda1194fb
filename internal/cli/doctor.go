// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckStatus represents the status of a doctor check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
)

// Symbol returns the marker printed before a check.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return successColor.Sprint("[OK]")
	case CheckWarn:
		return warnColor.Sprint("[!!]")
	default:
		return "?"
	}
}

// HealthCheck is one line of doctor output.
type HealthCheck struct {
	Status  CheckStatus
	Message string
}

// runChecks inspects the loaded configuration. Loading already failed for
// anything invalid, so only warnings remain.
func runChecks(app *App) []HealthCheck {
	checks := []HealthCheck{{Status: CheckPass, Message: "configuration is valid"}}
	for _, w := range app.Config.Warnings() {
		checks = append(checks, HealthCheck{Status: CheckWarn, Message: w})
	}
	return checks
}

func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "report configuration problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks(app)
			warned := 0
			for _, c := range checks {
				fmt.Fprintf(app.Out, "%s %s\n", c.Status.Symbol(), c.Message)
				if c.Status == CheckWarn {
					warned++
				}
			}
			fmt.Fprintln(app.Out)
			if warned == 0 {
				successColor.Fprintln(app.Out, "No problems found.")
			} else {
				warnColor.Fprintf(app.Out, "%d warning(s).\n", warned)
			}
			return nil
		},
	}
}
