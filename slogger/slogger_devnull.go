/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slogger

// NewDevNullLogger returns a Logger that discards everything. It is the
// library default so logging stays opt-in.
func NewDevNullLogger() Logger {
	return &devNullLogger{}
}

type devNullLogger struct{}

func (l *devNullLogger) Debug(msg string, keysAndValues ...any) {}
func (l *devNullLogger) Info(msg string, keysAndValues ...any)  {}
func (l *devNullLogger) Warn(msg string, keysAndValues ...any)  {}
func (l *devNullLogger) Error(msg string, keysAndValues ...any) {}
func (l *devNullLogger) With(keysAndValues ...any) Logger       { return l }
