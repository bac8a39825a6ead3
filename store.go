package pagecrawler

import (
	"context"
	"time"
)

// Crawl is one recorded run of the crawler against a seed URL.
type Crawl struct {
	ID         string    `json:"id"`
	SeedURL    string    `json:"seedUrl"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"` // zero while running or if aborted
	Completed  int       `json:"completed"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "crawl seed URL required")
	}
	return nil
}

// CrawlService records crawl runs.
type CrawlService interface {
	// CreateCrawl stores a new crawl, assigning its ID and start time.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FinishCrawl marks a crawl finished with its page counts.
	// Returns ENOTFOUND if the crawl does not exist.
	FinishCrawl(ctx context.Context, id string, completed, failed int) error

	// FindCrawlByID retrieves a crawl by ID.
	// Returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)
}

// StoredRecord is a Record persisted by a record store.
type StoredRecord struct {
	ID          string    `json:"id"`
	CrawlID     string    `json:"crawlId"`
	SourceURL   string    `json:"sourceUrl"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"` // order of appearance within the crawl
	FetchedAt   time.Time `json:"fetchedAt"`
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	CrawlID   *string `json:"crawlId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
