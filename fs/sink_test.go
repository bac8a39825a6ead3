package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Output File
// The sink writes to a temp file and moves it into place on Commit

func TestFileSink_AppendWritesToTempFile(t *testing.T) {
	t.Parallel()

	// Given an open sink
	path := filepath.Join(t.TempDir(), "crawled_text.txt")
	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())
	t.Cleanup(func() { _ = sink.Abort() })

	// When I append a record
	err := sink.Append(context.Background(), &pagecrawler.Record{
		SourceURL: "https://example.com/",
		Text:      "Welcome to the example home page.",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the record is in the temp file
	data, err := os.ReadFile(path + ".tmp")
	require.NoError(t, err)
	assert.Equal(t, "\n\n=== Content from: https://example.com/ ===\nWelcome to the example home page.", string(data))

	// And the final file does not exist yet
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until commit")
}

func TestFileSink_CommitMovesTempFileIntoPlace(t *testing.T) {
	t.Parallel()

	// Given a sink with two records
	path := filepath.Join(t.TempDir(), "out.txt")
	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())
	for _, r := range []*pagecrawler.Record{
		{SourceURL: "https://example.com/a", Text: "first"},
		{SourceURL: "https://example.com/b", Text: "second\nwith two lines"},
	} {
		require.NoError(t, sink.Append(context.Background(), r))
	}

	// When I commit
	err := sink.Commit()

	// Then the final file holds both records in order
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"\n\n=== Content from: https://example.com/a ===\nfirst"+
			"\n\n=== Content from: https://example.com/b ===\nsecond\nwith two lines",
		string(data))

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after commit")
}

func TestFileSink_CommitWithNoRecordsLeavesEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())

	require.NoError(t, sink.Commit())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFileSink_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an output file from a previous crawl
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())
	require.NoError(t, sink.Append(context.Background(), &pagecrawler.Record{SourceURL: "https://example.com/", Text: "new"}))

	// When I commit
	require.NoError(t, sink.Commit())

	// Then the old content is replaced
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n\n=== Content from: https://example.com/ ===\nnew", string(data))
}

func TestFileSink_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	// Given an output file from a previous crawl
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())
	require.NoError(t, sink.Append(context.Background(), &pagecrawler.Record{SourceURL: "https://example.com/", Text: "new"}))

	// When I abort
	err := sink.Abort()

	// Then the previous output survives and the temp file is gone
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileSink_AbortWithoutOpenSucceeds(t *testing.T) {
	t.Parallel()

	sink := fs.NewFileSink(filepath.Join(t.TempDir(), "out.txt"))

	assert.NoError(t, sink.Abort())
}

func TestFileSink_OpenFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	sink := fs.NewFileSink(filepath.Join(t.TempDir(), "missing", "out.txt"))

	err := sink.Open()

	require.Error(t, err)
	assert.Equal(t, pagecrawler.ESINK, pagecrawler.ErrorCode(err))
}

func TestFileSink_AppendBeforeOpenFails(t *testing.T) {
	t.Parallel()

	sink := fs.NewFileSink(filepath.Join(t.TempDir(), "out.txt"))

	err := sink.Append(context.Background(), &pagecrawler.Record{SourceURL: "https://example.com/", Text: "x"})

	assert.Equal(t, pagecrawler.ESINK, pagecrawler.ErrorCode(err))
}

func TestFileSink_AppendRejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	sink := fs.NewFileSink(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, sink.Open())
	t.Cleanup(func() { _ = sink.Abort() })

	err := sink.Append(context.Background(), &pagecrawler.Record{Text: "no url"})

	assert.Equal(t, pagecrawler.EINVALID, pagecrawler.ErrorCode(err))
}

func TestFileSink_ConcurrentAppendsDoNotInterleave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	sink := fs.NewFileSink(path)
	require.NoError(t, sink.Open())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Append(context.Background(), &pagecrawler.Record{
				SourceURL: "https://example.com/",
				Text:      "the same body every time",
			})
		}()
	}
	wg.Wait()
	require.NoError(t, sink.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	one := pagecrawler.FormatRecord(&pagecrawler.Record{SourceURL: "https://example.com/", Text: "the same body every time"})
	assert.Len(t, string(data), 20*len(one))
	assert.Equal(t, 20, strings.Count(string(data), one))
}
