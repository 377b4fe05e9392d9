package louver

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: logLevel,
}))

// SetLogLevel adjusts the verbosity of the package logger. Mode transitions
// and lifecycle events log at debug; row factory failures warn.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetLogger replaces the package logger. Terminal hosts own stderr while they
// run, so embedding applications usually route this to a file.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
