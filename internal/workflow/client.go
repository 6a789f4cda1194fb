// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/flowchat/internal/config"
)

const (
	// DefaultTimeout bounds a workflow request when none is configured.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum accepted reply body size.
	MaxResponseSize = 10 * 1024 * 1024

	// timestampLayout matches JavaScript's Date.prototype.toISOString.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

var (
	// ErrNoURL indicates the target has no endpoint configured.
	ErrNoURL = errors.New("workflow has no URL configured")

	// ErrResponseTooLarge indicates the reply exceeded MaxResponseSize.
	ErrResponseTooLarge = errors.New("response too large")

	// ErrNullResponse indicates the reply body was the JSON literal null.
	ErrNullResponse = errors.New("response body is null")
)

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("workflow returned HTTP %d", e.Status)
}

// Request is the JSON body posted to a workflow.
type Request struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Workflow  string `json:"workflow"`
}

// Reply is the decoded answer of a workflow.
type Reply struct {
	// Text is what the chat displays.
	Text string
	// Raw is the undecoded body.
	Raw json.RawMessage
}

// Client posts messages to workflow endpoints.
type Client struct {
	httpClient *http.Client
	auth       config.AuthConfig
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a client using the request timeout and credentials in cfg.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	timeout := cfg.Request.Timeout.Duration
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		auth:       cfg.Auth,
		timeout:    timeout,
		logger:     logger.With().Str("component", "workflow").Logger(),
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// NewRequest builds the JSON body for text sent at the given time.
func NewRequest(target Target, text string, at time.Time) Request {
	return Request{
		Message:   text,
		Timestamp: at.UTC().Format(timestampLayout),
		Workflow:  target.ID,
	}
}

// Send posts text to target and returns the reply. Exactly one request is
// made; there is no retry.
func (c *Client) Send(ctx context.Context, target Target, text string, at time.Time) (Reply, error) {
	if target.URL == "" {
		return Reply{}, fmt.Errorf("%s: %w", target.ID, ErrNoURL)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(NewRequest(target, text, at))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.auth.HasCredentials() {
		req.SetBasicAuth(c.auth.Username, c.auth.Password)
	}

	c.logger.Debug().
		Str("workflow", target.ID).
		Int("length", len(text)).
		Bool("auth", c.auth.HasCredentials()).
		Msg("WORKFLOW_REQUEST")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Str("workflow", target.ID).Err(err).Msg("WORKFLOW_ERROR")
		return Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("workflow", target.ID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("WORKFLOW_RESPONSE")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		err := &StatusError{Status: resp.StatusCode}
		c.logger.Error().Str("workflow", target.ID).Err(err).Msg("WORKFLOW_ERROR")
		return Reply{}, err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) > MaxResponseSize {
		return Reply{}, ErrResponseTooLarge
	}

	display, err := ExtractText(raw)
	if err != nil {
		c.logger.Error().Str("workflow", target.ID).Err(err).Msg("WORKFLOW_ERROR")
		return Reply{}, err
	}
	return Reply{Text: display, Raw: raw}, nil
}

// ExtractText picks the display text out of a reply body: the "response"
// string if non-empty, else the "message" string if non-empty, else the
// whole body re-encoded as compact JSON. Whitespace counts as content.
// A null body is an error.
func ExtractText(raw []byte) (string, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if body == nil {
		return "", ErrNullResponse
	}

	if obj, ok := body.(map[string]any); ok {
		for _, key := range []string{"response", "message"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s, nil
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return buf.String(), nil
}
