package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/gymrat/internal/config"
)

// New creates a preconfigured JSON slog.Logger at info level.
func New() *slog.Logger {
	return NewWithLevel(os.Stdout, "info")
}

// NewWithLevel creates a JSON logger writing to w. Unknown levels fall back to info.
func NewWithLevel(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func fromConfig(cfg *config.Config) *slog.Logger {
	return NewWithLevel(os.Stdout, cfg.LogLevel)
}

