package crawl

import (
	"context"
	"sync"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/time/rate"
)

var _ pagecrawler.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter pauses before every request to a host.
//
// Each call to Wait sleeps one full delay, so a sequential crawl always
// leaves at least delay between the end of one fetch and the start of the
// next, however long the fetch took. A per-host token bucket with a burst
// of 1 additionally keeps concurrent workers from starting requests to the
// same host less than delay apart.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewDomainLimiter creates a DomainLimiter that pauses delay before each
// request. A delay of zero or less disables waiting.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.delay), 1)
		d.limiters[host] = limiter
	}
	return limiter
}
