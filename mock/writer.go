package mock

import (
	"context"
	"sync"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
)

var _ pagecrawler.Sink = (*Sink)(nil)

// Sink is a mock implementation of pagecrawler.Sink.
type Sink struct {
	AppendFn func(ctx context.Context, r *pagecrawler.Record) error
}

func (s *Sink) Append(ctx context.Context, r *pagecrawler.Record) error {
	return s.AppendFn(ctx, r)
}

var _ pagecrawler.Sink = (*RecordingSink)(nil)

// RecordingSink is an in-memory pagecrawler.Sink that keeps every record
// it receives. It is safe for concurrent use.
type RecordingSink struct {
	mu      sync.Mutex
	records []pagecrawler.Record
}

func (s *RecordingSink) Append(_ context.Context, r *pagecrawler.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *r)
	return nil
}

// Records returns a copy of the records appended so far.
func (s *RecordingSink) Records() []pagecrawler.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pagecrawler.Record(nil), s.records...)
}
