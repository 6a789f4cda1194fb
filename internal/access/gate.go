// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/flowchat/internal/config"
)

// Gate decides once per process whether the caller may use the chat.
//
// The check is fail-closed: every condition other than a positive match on
// the allow-list yields Denied.
type Gate struct {
	allow   AllowList
	lookup  Lookup
	timeout time.Duration
	logger  zerolog.Logger

	once    sync.Once
	mu      sync.RWMutex
	verdict Verdict
}

// NewGate creates a gate from cfg. A nil lookup queries cfg.Access.LookupURL.
func NewGate(cfg *config.Config, lookup Lookup, logger zerolog.Logger) *Gate {
	timeout := cfg.Access.LookupTimeout.Duration
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if lookup == nil {
		lookup = NewHTTPLookup(cfg.Access.LookupURL, nil)
	}
	return &Gate{
		allow:   ParseAllowList(cfg.Access.AllowList),
		lookup:  lookup,
		timeout: timeout,
		logger:  logger.With().Str("component", "access").Logger(),
		verdict: Pending{},
	}
}

// Verdict returns the current verdict. It is Pending until Resolve finishes.
func (g *Gate) Verdict() Verdict {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.verdict
}

// Resolve runs the access check and returns the verdict. Only the first call
// does any work; later and concurrent calls wait for it and return the same
// verdict.
func (g *Gate) Resolve(ctx context.Context) Verdict {
	g.once.Do(func() {
		v := g.check(ctx)
		g.mu.Lock()
		g.verdict = v
		g.mu.Unlock()

		s := v.Summary()
		g.logger.Info().
			Bool("allowed", s.Allowed).
			Str("address", s.Address).
			Str("reason", s.Reason).
			Msg("ACCESS_VERDICT")
	})
	return g.Verdict()
}

func (g *Gate) check(ctx context.Context) Verdict {
	if g.allow.IsEmpty() {
		return deniedNoRule()
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	addr, err := g.lookup.PublicAddress(ctx)
	switch {
	case errors.Is(err, ErrEmptyAddress):
		return deniedUndetectable()
	case err != nil:
		g.logger.Warn().Err(err).Msg("LOOKUP_FAILED")
		return deniedLookup()
	case addr == "":
		return deniedUndetectable()
	}

	if !g.allow.Contains(addr) {
		return deniedNotAllowed(addr)
	}
	return Allowed{Address: addr}
}
