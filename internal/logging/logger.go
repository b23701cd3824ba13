// Package logging configures the process-wide structured logger used by
// every command and client in the tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level names accepted in the LOG_LEVEL environment variable.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Format names accepted in the LOG_FORMAT environment variable.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

func init() {
	Setup(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Setup rebuilds the default logger with the given level and format.
// Unrecognized values fall back to info and text, so a typo in the
// environment never silences logging entirely.
func Setup(w io.Writer, level, format string) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		lvl = slog.LevelDebug
	case LevelWarn:
		lvl = slog.LevelWarn
	case LevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		defaultLogger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	defaultLogger = slog.New(slog.NewTextHandler(w, opts))
}

// Debug logs a message at debug level with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a message at warn level with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// With returns a logger that carries the given attributes on every record,
// for call sites that log the same context repeatedly.
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// MaskSensitive hides most of a secret, keeping a short prefix so values
// can still be told apart in logs.
func MaskSensitive(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + "****"
}
