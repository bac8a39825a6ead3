package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagecrawler.CrawlService = (*CrawlService)(nil)

// CrawlService implements pagecrawler.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl creates a new crawl.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *pagecrawler.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	crawl.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, seed_url, started_at)
		VALUES (?, ?, ?)
	`, crawl.ID, crawl.SeedURL, crawl.StartedAt.Format(time.RFC3339))

	return err
}

// FinishCrawl stamps the finish time and page counts of a crawl.
func (s *CrawlService) FinishCrawl(ctx context.Context, id string, completed, failed int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE crawls
		SET finished_at = ?, completed = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), completed, failed, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagecrawler.Errorf(pagecrawler.ENOTFOUND, "crawl not found")
	}
	return nil
}

// FindCrawlByID retrieves a crawl by ID.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*pagecrawler.Crawl, error) {
	var crawl pagecrawler.Crawl
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, started_at, finished_at, completed, failed
		FROM crawls
		WHERE id = ?
	`, id).Scan(&crawl.ID, &crawl.SeedURL, &startedAt, &finishedAt, &crawl.Completed, &crawl.Failed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagecrawler.Errorf(pagecrawler.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if crawl.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if crawl.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &crawl, nil
}
