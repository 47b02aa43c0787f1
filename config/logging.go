// SPDX-License-Identifier: MIT

package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// NewLogger fans every record out as text to console and, when file is not
// nil, as JSON lines to file. Both sinks share level.
func NewLogger(console, file io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(console, opts)}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// SetupLogger builds the process logger from a LogConfig file path: text on
// stderr, plus JSON appended to logFile when one is set. A log file that
// cannot be opened is reported on stderr and skipped. The returned cleanup
// closes the file.
func SetupLogger(logFile string, level slog.Level) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	if logFile == "" {
		return NewLogger(os.Stderr, nil, level), noop
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := NewLogger(os.Stderr, nil, level)
		logger.Warn("config: log file unavailable, logging to stderr only", "file", logFile, "err", err)
		return logger, noop
	}

	return NewLogger(os.Stderr, file, level), file.Close
}
