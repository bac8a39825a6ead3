// Package http provides an HTTP-based implementation of pagecrawler.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "pagecrawler/1.0 (+https://github.com/alexotsu/docs-page-crawler)"

// Ensure Fetcher implements pagecrawler.Fetcher at compile time.
var _ pagecrawler.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits the number of body bytes read per response.
// Longer bodies are truncated, not rejected.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the URL and returns the response for any status code.
// Timeouts, connection failures and body read errors are returned as
// ETRANSPORT errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagecrawler.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pagecrawler.Errorf(pagecrawler.EINVALID, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pagecrawler.Errorf(pagecrawler.ETRANSPORT, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, pagecrawler.Errorf(pagecrawler.ETRANSPORT, "read body of %s: %v", url, err)
	}

	return &pagecrawler.Response{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
