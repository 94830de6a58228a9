// ABOUTME: Structured logger setup for the soundstream binaries
// ABOUTME: Maps a level name and optional log file onto a slog handler
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ParseLevel maps "error", "warn", "info" and "debug" onto slog levels.
// "none" is handled by Configure.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "error":
		return slog.LevelError, nil
	case "warn":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("unexpected log level %q", level)
	}
}

// Configure builds a logger for level and installs it as the slog default.
//
// With an empty logFile the logger writes text to stdout. Otherwise it writes
// JSON to logFile, and also text to stdout when echo is set. The returned
// closer releases the log file and is never nil.
func Configure(level, logFile string, echo bool) (*slog.Logger, io.Closer, error) {
	if level == "none" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if logFile == "" {
		logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var handler slog.Handler = slog.NewJSONHandler(f, opts)
	if echo {
		handler = fanout{handler, slog.NewTextHandler(os.Stdout, opts)}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
