package logger

import (
	"log/slog"
	"os"
)

// New returns the default structured logger. Services take a *slog.Logger
// through options, so hosts embedding the core can substitute their own.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
