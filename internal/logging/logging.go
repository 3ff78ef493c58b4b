// Package logging builds the structured logger shared by every command:
// a charmbracelet/log console handler, optionally fanned out to a JSON file
// and the systemd journal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures New.
type Options struct {
	Level    string    // debug, info, warn or error
	Prefix   string    // Console prefix, e.g. "tunnels"
	Output   io.Writer // Console destination; os.Stderr when nil
	JSONPath string    // Optional JSON lines file
	Journald bool      // Also send records to the systemd journal
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// New builds the logger. The returned close function releases the JSON file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	console := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           log.Level(level),
	})
	handlers := []slog.Handler{console}
	closeFn := func() error { return nil }

	if opts.JSONPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.JSONPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create directory: %w", err)
		}
		f, err := os.OpenFile(opts.JSONPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot open %s: %w", opts.JSONPath, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closeFn = f.Close
	}

	if opts.Journald {
		h, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: journalKey,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				a.Key = journalKey(a.Key)
				return a
			},
		})
		if err != nil {
			console.Warn("systemd journal unavailable", "err", err)
		} else {
			handlers = append(handlers, h)
		}
	}

	if len(handlers) == 1 {
		return slog.New(console), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// journalKey upper-cases a key and replaces anything journald rejects.
func journalKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(s))
}

// Discard returns a logger that drops everything. Used by tests and by
// front ends created without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
