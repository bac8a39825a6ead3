package slog

import (
	"context"
	"log/slog"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

// Ensure LoggingFetcher implements pagecrawler.Fetcher.
var _ pagecrawler.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pagecrawler.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagecrawler.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *pagecrawler.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Body)
		}
		logResult(ctx, f.logger, "fetch", begin, err,
			"url", url,
			"status", status,
			"bytes", size,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
