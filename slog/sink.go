package slog

import (
	"context"
	"log/slog"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

// Ensure LoggingSink implements pagecrawler.Sink.
var _ pagecrawler.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with logging.
type LoggingSink struct {
	next   pagecrawler.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next pagecrawler.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Append delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Append(ctx context.Context, r *pagecrawler.Record) (err error) {
	defer func(begin time.Time) {
		logResult(ctx, s.logger, "append", begin, err,
			"url", r.SourceURL,
			"bytes", len(r.Text),
		)
	}(time.Now())
	return s.next.Append(ctx, r)
}
