package pagecrawler

import "context"

// DomainLimiter provides per-host politeness delays.
type DomainLimiter interface {
	// Wait blocks until a request to the host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
