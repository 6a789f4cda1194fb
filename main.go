// flowchat - a terminal chat front-end for n8n workflows.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/cli"
	"github.com/jeranaias/flowchat/internal/config"
	"github.com/jeranaias/flowchat/internal/session"
	"github.com/jeranaias/flowchat/internal/ui/chat"
	"github.com/jeranaias/flowchat/internal/ui/components"
	"github.com/jeranaias/flowchat/internal/ui/styles"
	"github.com/jeranaias/flowchat/internal/workflow"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(cli.Execute(runTUI))
}

// runTUI starts the full-screen interface.
func runTUI(ctx context.Context, app *cli.App) error {
	theme := styles.NewTheme()

	registry := workflow.NewRegistry(app.Config)
	client := session.New(registry, workflow.NewClient(app.Config, app.Logger), app.Logger)
	gate := access.NewGate(app.Config, app.Lookup, app.Logger)

	m := NewModel(ctx, app.Config, theme, gate, client)

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if app.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("error running flowchat: %w", err)
	}
	return nil
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application screen.
type State int

const (
	StateVerifying State = iota // Access check in progress
	StateDenied                 // Access denied
	StateChat                   // Chat view
)

// VerdictMsg reports that the access check has finished.
type VerdictMsg struct {
	Verdict access.Verdict
}

// Model is the main Bubble Tea model for the application.
//
// The screen is never stored: it is derived from the gate's verdict on
// every Update and View, so the chat cannot be shown or receive input
// unless access was allowed.
type Model struct {
	ctx    context.Context
	config *config.Config
	theme  *styles.Theme

	gate *access.Gate

	// Dimensions
	width  int
	height int

	verifying components.Verifying
	denied    components.Denied
	chatModel chat.Model
}

// NewModel creates the application model. The chat model is built up front
// but stays hidden until the verdict is Allowed.
func NewModel(ctx context.Context, cfg *config.Config, theme *styles.Theme, gate *access.Gate, client *session.Client) *Model {
	return &Model{
		ctx:       ctx,
		config:    cfg,
		theme:     theme,
		gate:      gate,
		verifying: components.NewVerifying(theme),
		chatModel: chat.New(cfg, client, theme),
	}
}

// State derives the current screen from the verdict.
func (m *Model) State() State {
	switch m.gate.Verdict().(type) {
	case access.Allowed:
		return StateChat
	case access.Denied:
		return StateDenied
	default:
		return StateVerifying
	}
}

// Init starts the verifying animation and the access check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.verifying.Init(), m.resolveAccess())
}

// resolveAccess runs the access check off the update loop.
func (m *Model) resolveAccess() tea.Cmd {
	gate, ctx := m.gate, m.ctx
	return func() tea.Msg {
		return VerdictMsg{Verdict: gate.Resolve(ctx)}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.verifying.SetSize(msg.Width, msg.Height)
		m.denied.SetSize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	case VerdictMsg:
		return m.handleVerdict(msg)
	}

	switch m.State() {
	case StateChat:
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	case StateDenied:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q", "esc", "enter", "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil

	default:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.verifying, cmd = m.verifying.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleVerdict(msg VerdictMsg) (tea.Model, tea.Cmd) {
	switch v := m.gate.Verdict().(type) {
	case access.Allowed:
		return m, m.chatModel.Init()
	case access.Denied:
		m.denied = components.NewDenied(m.theme, v, Version)
		m.denied.SetSize(m.width, m.height)
	}
	return m, nil
}

// View renders the screen for the current verdict.
func (m *Model) View() string {
	switch m.State() {
	case StateChat:
		return m.chatModel.View()
	case StateDenied:
		return m.denied.View()
	default:
		return m.verifying.View()
	}
}
