// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps charmbracelet/log with cookbook event helpers.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is a structured key/value logger.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger writing to w at the given level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a level name ("debug", "info", ...) to a log level,
// defaulting to info for unknown names.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ConfigLoaded logs the resolved content and upload locations.
func (l *Logger) ConfigLoaded(file, contentRoot string) {
	l.Debug("config loaded",
		"file", file,
		"content_root", contentRoot)
}

// RecipeSaved logs a recipe file write.
func (l *Logger) RecipeSaved(path, category string) {
	l.Info("recipe saved",
		"path", path,
		"category", category)
}

// ImageStored logs an uploaded image write.
func (l *Logger) ImageStored(path string, size int64) {
	l.Info("image stored",
		"path", path,
		"bytes", size)
}

// StaleRemoved logs deletion of a recipe file replaced under a new name.
func (l *Logger) StaleRemoved(path string) {
	l.Info("deleted old recipe file",
		"path", path)
}

// FileError logs a failure affecting a single file.
func (l *Logger) FileError(path string, err error) {
	l.Error("file error",
		"file", path,
		"error", err)
}

// Request logs a completed HTTP request.
func (l *Logger) Request(id, method, path string, status int, took time.Duration) {
	l.Info("request",
		"id", id,
		"method", method,
		"path", path,
		"status", status,
		"duration", took.Round(time.Microsecond))
}
