/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package slogger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDebug, LevelFromString("debug"))
	assert.Equal(t, LevelWarn, LevelFromString("WARNING"))
	assert.Equal(t, LevelError, LevelFromString("error"))
	assert.Equal(t, LevelInfo, LevelFromString(""))
	assert.Equal(t, LevelInfo, LevelFromString("bogus"))
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	log.With("db", "movies").Info("page delivered", "rows", 10)

	out := buf.String()
	assert.Contains(t, out, "db=movies")
	assert.Contains(t, out, "rows=10")
	assert.Contains(t, out, "page delivered")
}

func TestDevNullLoggerIsSilent(t *testing.T) {
	log := NewDevNullLogger()
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.NotNil(t, log.With("k", "v"))
}
