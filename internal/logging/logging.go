// Package logging defines a minimal structured-logging interface used across
// the project, with an implementation backed by log/slog. The variadic args
// are interpreted as key-value pairs, e.g.:
//
//	log.Warn("index rewrite failed", "path", path, "error", err)
package logging

import (
	"log/slog"
	"os"
)

// Logger is a structured logger.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions.
	Warn(msg string, args ...any)

	// Error logs a failure.
	Error(msg string, args ...any)

	// With returns a child logger that always includes the given
	// key-value pairs.
	With(args ...any) Logger
}

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog logger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewStderr returns a logger writing human-readable lines to stderr.
func NewStderr() *SlogLogger {
	return &SlogLogger{l: slog.New(slog.NewTextHandler(os.Stderr, nil))}
}

func (s *SlogLogger) Info(msg string, args ...any) {
	s.l.Info(msg, args...)
}

func (s *SlogLogger) Warn(msg string, args ...any) {
	s.l.Warn(msg, args...)
}

func (s *SlogLogger) Error(msg string, args ...any) {
	s.l.Error(msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// NopLogger discards everything. Useful as a default in constructors and in
// tests that don't assert on log output.
type NopLogger struct{}

// Nop returns a logger that discards all output.
func Nop() NopLogger { return NopLogger{} }

func (NopLogger) Info(msg string, args ...any)  {}
func (NopLogger) Warn(msg string, args ...any)  {}
func (NopLogger) Error(msg string, args ...any) {}
func (n NopLogger) With(args ...any) Logger     { return n }
