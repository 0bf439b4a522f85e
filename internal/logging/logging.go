// Package logging builds the leveled slog logger used by the command line
// tools and adapts it to the printf-style logger the simulation expects.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog.Level.
// Supported values: "debug", "info", "warn", "error" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewLogger creates a leveled text slog.Logger writing to w
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Printf adapts a slog.Logger to the Debugf/Infof/Warnf/Errorf logger
// interface. Messages are formatted before they reach the handler, so the
// level check happens first to skip formatting disabled output.
type Printf struct {
	L *slog.Logger
}

// NewPrintf wraps l, falling back to slog.Default for nil
func NewPrintf(l *slog.Logger) Printf {
	if l == nil {
		l = slog.Default()
	}
	return Printf{L: l}
}

func (p Printf) Debugf(format string, args ...any) { p.log(slog.LevelDebug, format, args...) }
func (p Printf) Infof(format string, args ...any)  { p.log(slog.LevelInfo, format, args...) }
func (p Printf) Warnf(format string, args ...any)  { p.log(slog.LevelWarn, format, args...) }
func (p Printf) Errorf(format string, args ...any) { p.log(slog.LevelError, format, args...) }

func (p Printf) log(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !p.L.Enabled(ctx, level) {
		return
	}
	p.L.Log(ctx, level, fmt.Sprintf(format, args...))
}
