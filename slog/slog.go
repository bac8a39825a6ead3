// Package slog provides log/slog decorators for crawler services.
package slog

import (
	"context"
	"log/slog"
	"time"
)

// logResult logs an operation at debug level when it succeeds and at
// warn level when it fails.
func logResult(ctx context.Context, logger *slog.Logger, msg string, begin time.Time, err error, args ...any) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
	}
	args = append(args, "duration", time.Since(begin), "err", err)
	logger.Log(ctx, level, msg, args...)
}
