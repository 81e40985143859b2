package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vinay2003/Airion-backend-sub001/internal/platform/correlation"
)

// New builds the application logger and installs it as the slog default.
// level: debug, info, warn, error (default info); format: json or text.
func New(w io.Writer, level, format string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(correlation.NewHandler(handler))
	slog.SetDefault(logger)
	return logger
}
