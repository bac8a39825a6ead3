package pagecrawler

import "context"

// Response is the raw result of fetching a URL.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the response carries a 2xx status code.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch performs a GET request for the URL and returns the response
	// regardless of its status code. Transport failures (timeouts,
	// connection errors) are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
