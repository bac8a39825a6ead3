package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	pchttp "github.com/alexotsu/docs-page-crawler/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body status and content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher()
		defer fetcher.Close()

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, server.URL, resp.URL)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(resp.Body))
		assert.True(t, resp.OK())
	})

	t.Run("returns non-2xx responses without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher()
		defer fetcher.Close()

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, resp.OK())
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		got := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher(pchttp.WithUserAgent("test-agent/2"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/2", <-got)
	})

	t.Run("truncates bodies beyond max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher(pchttp.WithMaxBodySize(10))
		defer fetcher.Close()

		resp, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, resp.Body, 10)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher(pchttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, pagecrawler.ETRANSPORT, pagecrawler.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pchttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns transport error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := pchttp.NewFetcher(pchttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, pagecrawler.ETRANSPORT, pagecrawler.ErrorCode(err))
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := pchttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1")
		require.Error(t, err)
		assert.Equal(t, pagecrawler.EINVALID, pagecrawler.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements pagecrawler.Fetcher
var _ pagecrawler.Fetcher = (*pchttp.Fetcher)(nil)
