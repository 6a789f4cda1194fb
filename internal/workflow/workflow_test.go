// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workflow

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/flowchat/internal/config"
)

func testTarget(url string) Target {
	return Target{ID: "job-offer", Name: "Job offer", URL: url}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(config.Default())
	require.Equal(t, config.WorkflowCount, reg.Len())

	def, ok := reg.Default()
	require.True(t, ok)
	assert.Equal(t, config.WorkflowJobOffer, def.ID)

	got, err := reg.Get(config.WorkflowIdeaImprovement)
	require.NoError(t, err)
	assert.Equal(t, "Idea improvement", got.Name)

	_, err = reg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownWorkflow)

	assert.Equal(t, config.WorkflowSocialContent, reg.Next(config.WorkflowJobOffer, 1))
	assert.Equal(t, config.WorkflowJobOffer, reg.Next(config.WorkflowIdeaImprovement, 1))
	assert.Equal(t, config.WorkflowIdeaImprovement, reg.Next(config.WorkflowJobOffer, -1))
	assert.Equal(t, config.WorkflowJobOffer, reg.Next("nope", 1))
}

func TestNewRequest_Timestamp(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("CET", 3600))
	req := NewRequest(testTarget(""), "hello", at)

	assert.Equal(t, "2025-03-04T04:06:07.890Z", req.Timestamp)
	assert.Equal(t, "job-offer", req.Workflow)
	assert.Equal(t, "hello", req.Message)
}

func TestClient_Send(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"Hi there"}`))
	}))
	defer srv.Close()

	client := NewClient(config.Default(), zerolog.Nop())
	reply, err := client.Send(context.Background(), testTarget(srv.URL), "Hello", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Hi there", reply.Text)
	assert.Equal(t, "Hello", got.Message)
	assert.Equal(t, "job-offer", got.Workflow)
	_, err = time.Parse(time.RFC3339, got.Timestamp)
	assert.NoError(t, err)
}

func TestClient_BasicAuth(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{"both set", "bot", "pw", "Basic " + base64.StdEncoding.EncodeToString([]byte("bot:pw"))},
		{"username only", "bot", "", ""},
		{"password only", "", "pw", ""},
		{"neither", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var header string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				header = r.Header.Get("Authorization")
				_, _ = w.Write([]byte(`{"response":"ok"}`))
			}))
			defer srv.Close()

			cfg := config.Default()
			cfg.Auth = config.AuthConfig{Username: tc.username, Password: tc.password}

			_, err := NewClient(cfg, zerolog.Nop()).Send(context.Background(), testTarget(srv.URL), "x", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tc.want, header)
		})
	}
}

func TestExtractText_NullBody(t *testing.T) {
	_, err := ExtractText([]byte(" null "))
	assert.ErrorIs(t, err, ErrNullResponse)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response wins", `{"response":"r","message":"m"}`, "r"},
		{"message fallback", `{"response":"","message":"m"}`, "m"},
		{"non-string response", `{"response":42,"message":"m"}`, "m"},
		{"whole body", `{ "status": "done", "count": 2 }`, `{"status":"done","count":2}`},
		{"array body", `[1, 2]`, `[1,2]`},
		{"whitespace response kept", `{"response":"  ","message":"m"}`, "  "},
		{"empty object", `{}`, `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractText([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// blockingServer never answers until the test ends. The handler does not
// read the body, so r.Context() alone would not be cancelled when the client
// gives up; release unblocks it before the server shuts down.
func blockingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	// Cleanups run last-in first-out: release, then close.
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestClient_Errors(t *testing.T) {
	t.Run("http 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(config.Default(), zerolog.Nop()).Send(context.Background(), testTarget(srv.URL), "x", time.Now())
		var serr *StatusError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, http.StatusInternalServerError, serr.Status)
	})

	t.Run("null body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("null"))
		}))
		defer srv.Close()

		_, err := NewClient(config.Default(), zerolog.Nop()).Send(context.Background(), testTarget(srv.URL), "x", time.Now())
		assert.ErrorIs(t, err, ErrNullResponse)
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		_, err := NewClient(config.Default(), zerolog.Nop()).Send(context.Background(), testTarget(srv.URL), "x", time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse response")
	})

	t.Run("no url", func(t *testing.T) {
		_, err := NewClient(config.Default(), zerolog.Nop()).Send(context.Background(), testTarget(""), "x", time.Now())
		assert.ErrorIs(t, err, ErrNoURL)
	})

	t.Run("cancelled", func(t *testing.T) {
		srv := blockingServer(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClient(config.Default(), zerolog.Nop()).Send(ctx, testTarget(srv.URL), "x", time.Now())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := blockingServer(t)

		cfg := config.Default()
		cfg.Request.Timeout = config.NewDuration(50 * time.Millisecond)
		_, err := NewClient(cfg, zerolog.Nop()).Send(context.Background(), testTarget(srv.URL), "x", time.Now())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
