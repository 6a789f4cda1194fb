// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/flowchat/internal/access"
	"github.com/jeranaias/flowchat/internal/config"
	"github.com/jeranaias/flowchat/internal/session"
)

type testApp struct {
	*App
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(allow, addr string) testApp {
	cfg := config.Default()
	cfg.Access.AllowList = allow
	cfg.Log.File = "off"
	cfg.UI.Markdown = false

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp()
	app.Config = cfg
	app.Lookup = access.StaticLookup{Address: addr}
	app.Out = out
	app.Err = errOut
	return testApp{App: app, out: out, err: errOut}
}

func (ta testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand(ta.App, func(ctx context.Context, app *App) error {
		return errors.New("tui not available in tests")
	})
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitError
}

func TestCheck(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "203.0.113.5")
		err := app.run(t, "check")
		assert.Equal(t, ExitSuccess, exitCode(err))
		assert.Contains(t, app.out.String(), "Access allowed")
		assert.Contains(t, app.out.String(), "203.0.113.5")
	})

	t.Run("denied json", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "198.51.100.7")
		err := app.run(t, "check", "--json")
		assert.Equal(t, ExitDenied, exitCode(err))

		var s access.Summary
		require.NoError(t, json.Unmarshal(app.out.Bytes(), &s))
		assert.False(t, s.Allowed)
		assert.Equal(t, "198.51.100.7", s.Address)
		assert.Equal(t, "not_allowed", s.Reason)
	})

	t.Run("no rule", func(t *testing.T) {
		app := newTestApp("", "203.0.113.5")
		err := app.run(t, "check")
		assert.Equal(t, ExitDenied, exitCode(err))
		assert.Contains(t, app.out.String(), access.DiagnosticNoRule)
	})
}

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"message":"Here is your post"}`))
	}))
	defer srv.Close()

	app := newTestApp("203.0.113.5", "203.0.113.5")
	for i := range app.Config.Workflows {
		app.Config.Workflows[i].URL = srv.URL
	}

	err := app.run(t, "send", "--workflow", config.WorkflowSocialContent, "Write", "a", "post")
	require.NoError(t, err)
	assert.Equal(t, "Here is your post\n", app.out.String())
	assert.Equal(t, "Write a post", got["message"])
	assert.Equal(t, config.WorkflowSocialContent, got["workflow"])
}

func TestSend_Errors(t *testing.T) {
	t.Run("denied", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "198.51.100.7")
		err := app.run(t, "send", "hi")
		assert.Equal(t, ExitDenied, exitCode(err))
		assert.Contains(t, app.err.String(), "Your IP: 198.51.100.7")
	})

	t.Run("unknown workflow", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "203.0.113.5")
		err := app.run(t, "send", "--workflow", "nope", "hi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown workflow")
	})

	t.Run("blank", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "203.0.113.5")
		err := app.run(t, "send", "  ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		app := newTestApp("203.0.113.5", "203.0.113.5")
		app.Config.Workflows[0].URL = srv.URL
		err := app.run(t, "send", "hi")
		assert.Equal(t, ExitError, exitCode(err))
		assert.Contains(t, err.Error(), session.FailureNotice)
	})
}

func TestProcessLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"pong"}`))
	}))
	defer srv.Close()

	app := newTestApp("203.0.113.5", "203.0.113.5")
	for i := range app.Config.Workflows {
		app.Config.Workflows[i].URL = srv.URL
	}
	s := newSession(app.App)
	ctx := context.Background()

	assert.False(t, processLine(ctx, app.App, s, "   "))
	assert.Empty(t, s.Transcript())

	assert.False(t, processLine(ctx, app.App, s, "/workflow idea-improvement"))
	assert.Equal(t, config.WorkflowIdeaImprovement, s.Selected())
	assert.Contains(t, app.out.String(), "Idea improvement active")

	assert.False(t, processLine(ctx, app.App, s, "/workflow nope"))
	assert.Equal(t, config.WorkflowIdeaImprovement, s.Selected())

	assert.False(t, processLine(ctx, app.App, s, "ping"))
	assert.Contains(t, app.out.String(), "pong")
	assert.Len(t, s.Transcript(), 2)

	app.out.Reset()
	assert.False(t, processLine(ctx, app.App, s, "/workflows"))
	assert.Contains(t, app.out.String(), "* idea-improvement")

	assert.True(t, processLine(ctx, app.App, s, "/quit"))
	assert.Equal(t, "idea-improvement> ", promptFor(s))
}

func TestProcessLine_ResubmitAfterFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"response":"pong"}`))
	}))
	defer srv.Close()

	app := newTestApp("203.0.113.5", "203.0.113.5")
	app.Config.Workflows[0].URL = srv.URL
	s := newSession(app.App)

	// The command context is already cancelled, as it is after an interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, processLine(ctx, app.App, s, "first"))
	assert.Contains(t, app.out.String(), session.FailureNotice)
	assert.False(t, s.Pending())

	app.out.Reset()
	assert.False(t, processLine(ctx, app.App, s, "second"))
	assert.Contains(t, app.out.String(), "pong")
	assert.NotContains(t, app.out.String(), session.FailureNotice)
	assert.Len(t, s.Transcript(), 4)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

type ctxKey struct{}

func TestLineContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
	cancel()

	ctx, stop := lineContext(parent)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, "v", ctx.Value(ctxKey{}))

	stop()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestReplyMatchingNoticeTextIsAReply(t *testing.T) {
	body, err := json.Marshal(map[string]string{"response": session.FailureNotice})
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	t.Run("send", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "203.0.113.5")
		app.Config.Workflows[0].URL = srv.URL
		require.NoError(t, app.run(t, "send", "hi"))
		assert.Contains(t, app.out.String(), session.FailureNotice)
	})

	t.Run("chat", func(t *testing.T) {
		app := newTestApp("203.0.113.5", "203.0.113.5")
		app.Config.Workflows[0].URL = srv.URL
		s := newSession(app.App)
		processLine(context.Background(), app.App, s, "hi")
		assert.Contains(t, app.out.String(), "Assistant (Job offer)")
	})
}

func TestDoctor(t *testing.T) {
	app := newTestApp("", "")
	app.Config.Auth = config.AuthConfig{Username: "bot", Password: "pw"}

	require.NoError(t, app.run(t, "doctor"))
	out := app.out.String()
	assert.Contains(t, out, "configuration is valid")
	assert.Contains(t, out, "allow_list is empty")
	assert.Contains(t, out, "Basic auth")
	assert.Contains(t, out, "warning(s)")
}

func TestConfigCommands(t *testing.T) {
	t.Run("show masks password", func(t *testing.T) {
		app := newTestApp("", "")
		app.Config.Auth.Password = "hunter2"
		require.NoError(t, app.run(t, "config", "show"))
		assert.NotContains(t, app.out.String(), "hunter2")
	})

	t.Run("init and path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		app := newTestApp("", "")
		require.NoError(t, app.run(t, "--config", path, "config", "init"))
		_, err := os.Stat(path)
		require.NoError(t, err)

		app2 := newTestApp("", "")
		err = app2.run(t, "--config", path, "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		app3 := newTestApp("", "")
		require.NoError(t, app3.run(t, "--config", path, "config", "path"))
		assert.Equal(t, path+"\n", app3.out.String())
	})
}

func TestVersion(t *testing.T) {
	app := newTestApp("", "")
	require.NoError(t, app.run(t, "version"))
	assert.Contains(t, app.out.String(), "flowchat "+Version)
}

func TestRootRunsTUI(t *testing.T) {
	app := newTestApp("", "")
	var called bool
	root := NewRootCommand(app.App, func(ctx context.Context, a *App) error {
		called = true
		assert.Same(t, app.App, a)
		return nil
	})
	root.SetArgs([]string{})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.True(t, called)
}
