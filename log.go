package ck

import (
	"log/slog"
	"os"
)

// logLevel controls toolkit log output. Default is LevelInfo.
var logLevel = new(slog.LevelVar)

// ckLogger reports resource and render failures on stderr.
var ckLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Logger returns the toolkit logger so backends log through the same handler.
func Logger() *slog.Logger {
	return ckLogger
}
