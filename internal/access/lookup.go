// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultLookupTimeout bounds a lookup when the caller sets none.
	DefaultLookupTimeout = 10 * time.Second

	// maxLookupResponseSize caps the lookup body; the answer is a tiny JSON object.
	maxLookupResponseSize = 64 * 1024
)

// ErrEmptyAddress is returned by a Lookup that answered without an address.
var ErrEmptyAddress = errors.New("lookup returned no address")

// Lookup discovers the caller's public address.
type Lookup interface {
	// PublicAddress returns the address, ErrEmptyAddress when the service
	// answered without one, or a *LookupError for any other failure.
	PublicAddress(ctx context.Context) (string, error)
}

// LookupError describes a failed lookup step.
type LookupError struct {
	Op  string // "request", "status", "decode"
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// HTTPLookup queries a JSON service answering {"ip": "<address>"}.
type HTTPLookup struct {
	url    string
	client *http.Client
}

// NewHTTPLookup creates a lookup against url. A nil client uses a client
// with DefaultLookupTimeout; callers normally bound each call with a context.
func NewHTTPLookup(url string, client *http.Client) *HTTPLookup {
	if client == nil {
		client = &http.Client{Timeout: DefaultLookupTimeout}
	}
	return &HTTPLookup{url: url, client: client}
}

type lookupResponse struct {
	IP string `json:"ip"`
}

// PublicAddress implements Lookup. It sends exactly one request and never retries.
func (l *HTTPLookup) PublicAddress(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return "", &LookupError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", &LookupError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &LookupError{Op: "status", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupResponseSize))
	if err != nil {
		return "", &LookupError{Op: "request", Err: err}
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &LookupError{Op: "decode", Err: err}
	}

	addr := strings.TrimSpace(parsed.IP)
	if addr == "" {
		return "", ErrEmptyAddress
	}
	return addr, nil
}

// StaticLookup always answers with the same address and error.
type StaticLookup struct {
	Address string
	Err     error
}

// PublicAddress implements Lookup.
func (s StaticLookup) PublicAddress(context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if s.Address == "" {
		return "", ErrEmptyAddress
	}
	return s.Address, nil
}
