package infra

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a slog.Logger per the logging config: JSON to stdout,
// plus a rotated file when logging.dir is set. Debug level also annotates
// records with their source location.
func NewLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer = os.Stdout
	if dir := cfg.Logging.Dir; dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   filepath.Join(dir, "market.log"),
				MaxSize:    10, // Megabytes
				MaxBackups: 3,
				MaxAge:     28, // Days
				Compress:   true,
			})
		}
		// Directory creation failure falls through to stdout-only.
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	logger := slog.New(slog.NewJSONHandler(writer, opts))
	if cfg.App.Name != "" {
		logger = logger.With(slog.String("app", cfg.App.Name))
	}
	return logger
}
