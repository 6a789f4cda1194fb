// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures structured logging for flowchat.
//
// The TUI owns the terminal, so by default logs go to a file in the config
// directory. Logging is best-effort: a log file that cannot be opened never
// stops the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/flowchat/internal/config"
)

// Destinations understood by Config.File besides a path.
const (
	DestinationStderr = "stderr"
	DestinationOff    = "off"
)

// Setup builds a logger from cfg. The returned closer releases the log file
// (if any) and is always non-nil.
func Setup(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)

	switch dest := strings.TrimSpace(cfg.File); strings.ToLower(dest) {
	case DestinationOff:
		return zerolog.Nop(), closer, nil
	case DestinationStderr:
		out = os.Stderr
	default:
		if dest == "" {
			dest, err = config.DefaultLogPath()
			if err != nil {
				return zerolog.Nop(), closer, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	return New(out, level, cfg.Pretty), closer, nil
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    w != os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
