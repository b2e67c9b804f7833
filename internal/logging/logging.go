// Package logging builds the charmbracelet/log loggers used by both binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

// ParseLevel parses a level name; empty or unknown names mean info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// OpenFile returns a logger appending to path. An empty path discards
// everything, since the TUI owns the terminal.
func OpenFile(path, level, prefix string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return New(io.Discard, level, prefix), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level, prefix), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
