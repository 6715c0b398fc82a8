/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package slogger is a minimal structured logging facade. It keeps the
// library decoupled from a concrete logger while shipping a ready-to-use
// implementation backed by log/slog with a tint handler.
package slogger

import "strings"

// Logger accepts a message plus alternating key-value pairs, in the style
// of slog and zap's sugared logger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// With returns a Logger that adds the given key-value pairs to every entry.
	With(keysAndValues ...any) Logger
}

// LogLevel is the minimum level a logger emits.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LevelFromString converts a string to a LogLevel, defaulting to info.
func LevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
