// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("debug")                   // level by name
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level
//
// Unknown level names fall back to info.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a colored default logger at the named level.
func Setup(level string) {
	SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel installs a colored default logger writing to stderr.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level))
}

// New returns a tint logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
