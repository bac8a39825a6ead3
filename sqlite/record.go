package sqlite

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagecrawler.Sink = (*RecordStore)(nil)

// RecordStore persists the records of one crawl. It implements
// pagecrawler.Sink, numbering records in the order they are appended.
type RecordStore struct {
	db      *DB
	crawlID string

	mu       sync.Mutex
	position int
}

// NewRecordStore creates a RecordStore appending to the given crawl.
func NewRecordStore(db *DB, crawlID string) *RecordStore {
	return &RecordStore{db: db, crawlID: crawlID}
}

// hashContent computes the xxHash of content as 16 hex digits.
func hashContent(content string) string {
	h := strconv.FormatUint(xxhash.Sum64String(content), 16)
	return strings.Repeat("0", 16-len(h)) + h
}

// Append stores a record.
func (s *RecordStore) Append(ctx context.Context, r *pagecrawler.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, crawl_id, source_url, content, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.crawlID, r.SourceURL, r.Text, hashContent(r.Text),
		s.position, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.position++
	return nil
}

// FindRecords retrieves records matching the filter in crawl order.
func (s *RecordStore) FindRecords(ctx context.Context, filter pagecrawler.RecordFilter) ([]*pagecrawler.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, source_url, content, content_hash, position, fetched_at FROM records WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY crawl_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*pagecrawler.StoredRecord
	for rows.Next() {
		var rec pagecrawler.StoredRecord
		var fetchedAt string

		if err := rows.Scan(&rec.ID, &rec.CrawlID, &rec.SourceURL, &rec.Text,
			&rec.ContentHash, &rec.Position, &fetchedAt); err != nil {
			return nil, err
		}
		if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}
