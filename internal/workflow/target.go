// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"errors"

	"github.com/jeranaias/flowchat/internal/config"
)

// ErrUnknownWorkflow is returned when a workflow ID is not registered.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// Target is one remote workflow endpoint.
type Target struct {
	ID   string
	Name string
	URL  string
}

// Registry is the fixed, ordered set of workflow targets.
type Registry struct {
	targets []Target
}

// NewRegistry builds the registry from configuration.
func NewRegistry(cfg *config.Config) *Registry {
	targets := make([]Target, 0, len(cfg.Workflows))
	for _, w := range cfg.Workflows {
		targets = append(targets, Target{ID: w.ID, Name: w.Name, URL: w.URL})
	}
	return &Registry{targets: targets}
}

// Targets returns the targets in configuration order.
func (r *Registry) Targets() []Target {
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Len returns the number of targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// Default returns the first target.
func (r *Registry) Default() (Target, bool) {
	if len(r.targets) == 0 {
		return Target{}, false
	}
	return r.targets[0], true
}

// Get finds a target by ID.
func (r *Registry) Get(id string) (Target, error) {
	for _, t := range r.targets {
		if t.ID == id {
			return t, nil
		}
	}
	return Target{}, ErrUnknownWorkflow
}

// Index returns the position of id, or -1.
func (r *Registry) Index(id string) int {
	for i, t := range r.targets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Next returns the ID after id, wrapping around. delta may be negative.
func (r *Registry) Next(id string, delta int) string {
	n := len(r.targets)
	if n == 0 {
		return id
	}
	i := r.Index(id)
	if i < 0 {
		return r.targets[0].ID
	}
	i = ((i+delta)%n + n) % n
	return r.targets[i].ID
}
