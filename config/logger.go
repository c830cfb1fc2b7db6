package config

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON logger, or a text logger at debug level in
// development.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.Development() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
