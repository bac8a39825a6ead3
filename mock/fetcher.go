package mock

import (
	"context"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

var _ pagecrawler.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagecrawler.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagecrawler.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagecrawler.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
