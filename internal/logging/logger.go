// Package logging builds the zap loggers used by snapcheck.
// Library logging is controlled by debug_mode in the config - when false, the
// library logs nothing. The CLI always logs, at debug level with --verbose.
package logging

import (
	"fmt"
	"snapcheck/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryStore  Category = "store"  // Snapshot reads, writes and mismatches
	CategoryNaming Category = "naming" // Auto-naming and caller resolution
	CategoryHTML   Category = "html"   // HTML adapter stages
	CategoryCLI    Category = "cli"    // snapctl commands
)

// New returns the library logger for cfg: a no-op logger unless debug mode is on.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	if !cfg.DebugMode {
		return zap.NewNop(), nil
	}
	return Build(cfg, false)
}

// Build always returns a real logger. verbose forces debug level.
func Build(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns the named child logger for a category.
func For(logger *zap.Logger, category Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(category))
}
