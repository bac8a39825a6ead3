package crawl

import (
	"sync"

	"github.com/alexotsu/docs-page-crawler/bloom"
)

// VisitedSet records every URL that has been dispatched for fetching.
// It only grows. It is safe for concurrent use by multiple goroutines.
//
// Membership is decided by the exact map alone. The Bloom filter in front
// of it only lets definitely-new URLs skip the map probe.
type VisitedSet struct {
	mu     sync.Mutex
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs.
func NewVisitedSet(n uint) *VisitedSet {
	if n == 0 {
		n = 1
	}
	return &VisitedSet{
		filter: bloom.NewFilter(n, visitedFalsePositiveRate),
		urls:   make(map[string]struct{}, min(n, 1024)),
	}
}

// Add inserts the URL and reports whether it was newly added.
// The membership check and the insertion happen as one step, so of
// several concurrent callers adding the same URL exactly one sees true.
func (v *VisitedSet) Add(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.filter.TestAndAdd(url) {
		if _, ok := v.urls[url]; ok {
			return false
		}
	}
	v.urls[url] = struct{}{}
	return true
}

// Contains reports whether the URL has been added.
func (v *VisitedSet) Contains(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.filter.Test(url) {
		return false
	}
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.urls)
}
