package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_Append(t *testing.T) {
	t.Parallel()

	t.Run("implements pagecrawler.Sink", func(t *testing.T) {
		t.Parallel()
		var _ pagecrawler.Sink = sqlite.NewRecordStore(nil, "")
	})

	t.Run("stores records in append order with hashes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		store := sqlite.NewRecordStore(db, crawl.ID)
		ctx := context.Background()

		require.NoError(t, store.Append(ctx, &pagecrawler.Record{SourceURL: "https://example.com/", Text: "home page text"}))
		require.NoError(t, store.Append(ctx, &pagecrawler.Record{SourceURL: "https://example.com/a", Text: "page a text"}))

		records, err := store.FindRecords(ctx, pagecrawler.RecordFilter{CrawlID: &crawl.ID})
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "https://example.com/", records[0].SourceURL)
		assert.Equal(t, "home page text", records[0].Text)
		assert.Equal(t, 0, records[0].Position)
		assert.Equal(t, 1, records[1].Position)
		assert.Equal(t, crawl.ID, records[0].CrawlID)
		assert.Len(t, records[0].ContentHash, 16)
		assert.NotEqual(t, records[0].ContentHash, records[1].ContentHash)
		assert.NotEqual(t, records[0].ID, records[1].ID)
		assert.False(t, records[0].FetchedAt.IsZero())
	})

	t.Run("identical text hashes identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		store := sqlite.NewRecordStore(db, crawl.ID)
		ctx := context.Background()

		require.NoError(t, store.Append(ctx, &pagecrawler.Record{SourceURL: "https://example.com/a", Text: "same"}))
		require.NoError(t, store.Append(ctx, &pagecrawler.Record{SourceURL: "https://example.com/a#x", Text: "same"}))

		records, err := store.FindRecords(ctx, pagecrawler.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, records[0].ContentHash, records[1].ContentHash)
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewRecordStore(db, createTestCrawl(t, db).ID)

		err := store.Append(context.Background(), &pagecrawler.Record{SourceURL: "https://example.com/"})

		assert.Equal(t, pagecrawler.EINVALID, pagecrawler.ErrorCode(err))
	})

	t.Run("fails for unknown crawl", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewRecordStore(db, "no-such-crawl")

		err := store.Append(context.Background(), &pagecrawler.Record{SourceURL: "https://example.com/", Text: "text"})

		assert.Error(t, err, "foreign key should reject the record")
	})
}

func TestRecordStore_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("filters by crawl and source url and paginates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		first := createTestCrawl(t, db)
		second := createTestCrawl(t, db)
		ctx := context.Background()

		firstStore := sqlite.NewRecordStore(db, first.ID)
		for i := range 5 {
			require.NoError(t, firstStore.Append(ctx, &pagecrawler.Record{
				SourceURL: fmt.Sprintf("https://example.com/%d", i),
				Text:      fmt.Sprintf("text %d", i),
			}))
		}
		require.NoError(t, sqlite.NewRecordStore(db, second.ID).Append(ctx, &pagecrawler.Record{
			SourceURL: "https://example.com/0",
			Text:      "again",
		}))

		byCrawl, err := firstStore.FindRecords(ctx, pagecrawler.RecordFilter{CrawlID: &second.ID})
		require.NoError(t, err)
		require.Len(t, byCrawl, 1)
		assert.Equal(t, "again", byCrawl[0].Text)

		url := "https://example.com/0"
		byURL, err := firstStore.FindRecords(ctx, pagecrawler.RecordFilter{SourceURL: &url})
		require.NoError(t, err)
		assert.Len(t, byURL, 2)

		page, err := firstStore.FindRecords(ctx, pagecrawler.RecordFilter{CrawlID: &first.ID, Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, 1, page[0].Position)
		assert.Equal(t, 2, page[1].Position)

		tail, err := firstStore.FindRecords(ctx, pagecrawler.RecordFilter{CrawlID: &first.ID, Offset: 3})
		require.NoError(t, err)
		assert.Len(t, tail, 2)
	})

	t.Run("deleting a crawl removes its records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawl := createTestCrawl(t, db)
		store := sqlite.NewRecordStore(db, crawl.ID)
		ctx := context.Background()
		require.NoError(t, store.Append(ctx, &pagecrawler.Record{SourceURL: "https://example.com/", Text: "text"}))

		_, err := db.ExecContext(ctx, "DELETE FROM crawls WHERE id = ?", crawl.ID)
		require.NoError(t, err)

		records, err := store.FindRecords(ctx, pagecrawler.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
