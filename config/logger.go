package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger. Production (GO_ENV) gets a
// JSON handler for log aggregation; everything else gets text for readable
// local output. LOG_LEVEL picks the level: debug, info, warn, or error,
// defaulting to info.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
