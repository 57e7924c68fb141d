// Package logger configures the process-wide zap logger. Diagnostic
// output goes to stderr so it never interleaves with the report written
// to stdout.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init initializes the logger with the given level and format.
// Format is "text" (console encoding) or "json".
func Init(level, format string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}

	encoding := "console"
	if format == "json" {
		encoding = "json"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Stack traces add nothing for a short-lived CLI.
	config.EncoderConfig.StacktraceKey = ""

	logger, err := config.Build()
	if err != nil {
		return err
	}

	log = logger
	return nil
}

// Get returns the global logger instance, creating a default one if
// Init was never called.
func Get() *zap.Logger {
	if log == nil {
		logger, err := zap.NewProduction(zap.WithCaller(false))
		if err != nil {
			panic(err)
		}
		log = logger
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
