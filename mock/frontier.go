package mock

import (
	"context"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

var _ pagecrawler.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagecrawler.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
