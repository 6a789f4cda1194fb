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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/config"
	"github.com/jeranaias/flowchat/internal/logging"
)

// Version information, set from main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitDenied  = 2
)

// ExitCodeError carries a process exit code through cobra's error return.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ErrAccessDenied is returned by commands that stop at the access gate.
var ErrAccessDenied = errors.New("access denied")

// App is the state shared by every command. Config and Logger are filled in
// before a command runs.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	// Lookup overrides the public address lookup. Nil uses the configured URL.
	Lookup access.Lookup

	Out io.Writer
	Err io.Writer

	configPath string
	logLevel   string
	logCloser  io.Closer
}

// TUIFunc runs the full-screen interface.
type TUIFunc func(ctx context.Context, app *App) error

// NewApp returns an App writing to the process's stdout and stderr.
func NewApp() *App {
	return &App{
		Logger: zerolog.Nop(),
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(runTUI TUIFunc) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewApp()
	root := NewRootCommand(app, runTUI)
	err := root.ExecuteContext(ctx)
	app.Close()

	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil && !errors.Is(exitErr.Err, ErrAccessDenied) {
			printError(app.Err, exitErr.Err)
		}
		return exitErr.Code
	}
	printError(app.Err, err)
	return ExitError
}

// Close flushes and closes the log destination.
func (a *App) Close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// load reads configuration and sets up logging unless a Config was injected.
func (a *App) load() error {
	if a.Config == nil {
		path := a.configPath
		if path == "" {
			path = os.Getenv("FLOWCHAT_CONFIG")
		}

		var (
			cfg *config.Config
			err error
		)
		if path != "" {
			cfg, err = config.LoadFromPath(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if a.logLevel != "" {
		a.Config.Log.Level = a.logLevel
	}

	logger, closer, err := logging.Setup(a.Config.Log)
	if err != nil {
		// Logging is best-effort; keep going without it.
		fmt.Fprintf(a.Err, "warning: logging disabled: %v\n", err)
		logger, closer = zerolog.Nop(), nil
	}
	a.Logger = logger
	a.logCloser = closer
	return nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the flowchat command tree.
func NewRootCommand(app *App, runTUI TUIFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "flowchat",
		Short: "chat with n8n workflows from the terminal",
		Long: `flowchat forwards your messages to one of three n8n webhook workflows and
shows the replies. Access is limited to callers whose public IP address is on
the configured allow-list.

Examples:
  flowchat
  flowchat check --json
  flowchat send --workflow social-content "Draft a post about our launch"
  N8N_WEBHOOK_IP_APPROUV=203.0.113.5 flowchat chat`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "path to a config file (TOML, JSON or YAML); also FLOWCHAT_CONFIG")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")

	root.AddCommand(
		newCheckCommand(app),
		newSendCommand(app),
		newChatCommand(app),
		newConfigCommand(app),
		newDoctorCommand(app),
		newVersionCommand(app),
	)
	return root
}

// resolveGate runs the access gate and reports a denial on stderr.
func resolveGate(ctx context.Context, app *App) (access.Verdict, error) {
	gate := access.NewGate(app.Config, app.Lookup, app.Logger)
	v := gate.Resolve(ctx)
	if denied, ok := v.(access.Denied); ok {
		printDenied(app.Err, denied)
		return v, &ExitCodeError{Code: ExitDenied, Err: ErrAccessDenied}
	}
	return v, nil
}
