// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// LevelTrace is below slog's debug level, for very chatty output.
const LevelTrace = slog.Level(-8)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(newLogger(slog.LevelInfo, "auto", os.Stderr))
}

// ParseLevel converts a setting string into a slog level, falling back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal", "critical":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init replaces the default logger. format is one of "text", "json" or "auto";
// "auto" writes JSON to files that are not terminals and text otherwise.
func Init(level, format string, w io.Writer) {
	defaultLogger.Store(newLogger(ParseLevel(level), format, w))
}

// Logger returns the underlying slog logger.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}

func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if useJSON(format, w) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func useJSON(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "json":
		return true
	case "text":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// IsDebug reports whether debug messages would be written.
func IsDebug() bool {
	return Logger().Enabled(context.Background(), slog.LevelDebug)
}

func logf(level slog.Level, format string, v ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

// Trace records trace log
func Trace(format string, v ...any) {
	logf(LevelTrace, format, v...)
}

// Debug records debug log
func Debug(format string, v ...any) {
	logf(slog.LevelDebug, format, v...)
}

// Info records info log
func Info(format string, v ...any) {
	logf(slog.LevelInfo, format, v...)
}

// Warn records warning log
func Warn(format string, v ...any) {
	logf(slog.LevelWarn, format, v...)
}

// Error records error log
func Error(format string, v ...any) {
	logf(slog.LevelError, format, v...)
}

// Fatal records fatal log and exit process
func Fatal(format string, v ...any) {
	logf(slog.LevelError, format, v...)
	os.Exit(1)
}
