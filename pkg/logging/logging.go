// Package logging builds the structured slog.Logger every entrypoint shares,
// lifted out of cmd/chronosuggest/main.go's inline construction so the cobra
// adapter and the app container can both reach it without importing cmd/.
package logging

import (
	"log/slog"
	"os"

	"github.com/chronosuggest/engine/pkg/config"
)

// New builds a text-handler slog.Logger writing to stderr, at debug level in
// development and info level otherwise.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
