// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/flowchat/internal/ui/styles"
	"github.com/jeranaias/flowchat/internal/util"
	"github.com/jeranaias/flowchat/internal/workflow"
)

// WorkflowTabs renders the workflow selector shown above the transcript.
type WorkflowTabs struct {
	Targets  []workflow.Target
	Selected string
	Width    int
	theme    *styles.Theme
}

// NewWorkflowTabs creates a selector over targets.
func NewWorkflowTabs(theme *styles.Theme, targets []workflow.Target) *WorkflowTabs {
	return &WorkflowTabs{Targets: targets, theme: theme}
}

// View renders one tab per target. On wide terminals tabs are numbered to
// match the alt+N shortcuts. Labels are shortened to fit narrow terminals.
func (w *WorkflowTabs) View() string {
	if len(w.Targets) == 0 {
		return ""
	}

	labelWidth := 0
	if w.Width > 0 {
		// "N " prefix plus padding per tab.
		labelWidth = w.Width/len(w.Targets) - 5
	}

	tabs := make([]string, 0, len(w.Targets))
	for i, t := range w.Targets {
		label := t.Name
		if labelWidth > 0 {
			label = util.TruncateWidth(label, labelWidth)
		}

		key := ""
		if w.theme.GetLayoutMode() == styles.LayoutWide {
			key = w.theme.TabKey.Render(fmt.Sprintf("%d", i+1))
		}
		if t.ID == w.Selected {
			tabs = append(tabs, key+w.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, key+w.theme.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// ActiveLine renders the "<name> active" caption shown under the composer.
func (w *WorkflowTabs) ActiveLine() string {
	for _, t := range w.Targets {
		if t.ID == w.Selected {
			return w.theme.ActiveWorkflow.Render(t.Name + " active")
		}
	}
	return ""
}
