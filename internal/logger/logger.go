// Package logger wraps log/slog with the attribute helpers used across the gateway.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger whose With helpers keep returning *Logger.
type Logger struct {
	*slog.Logger
}

type Config struct {
	Level  string    // debug, info, warn (or warning), error
	Format string    // text or json
	Output io.Writer // os.Stdout when nil
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "warning" {
		name = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.With(args...)}
}

// WithComponent tags records with the subsystem that emitted them.
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

func (l *Logger) WithProvider(provider string) *Logger {
	return l.with("provider", provider)
}

// WithOperation tags records with a provider operation and the id it was called with.
func (l *Logger) WithOperation(operation, id string) *Logger {
	return l.with("operation", operation, "id", id)
}

// WithRequest tags records with an outbound request correlation id.
func (l *Logger) WithRequest(requestID string) *Logger {
	return l.with("request_id", requestID)
}

func Default() *Logger {
	return New(Config{Level: "info", Format: "text"})
}

// Discard returns a logger that writes nowhere, for tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
