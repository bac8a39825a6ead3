package trafilatura_test

import (
	"strings"
	"testing"

	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"github.com/alexotsu/docs-page-crawler/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Ensure Filter implements pagecrawler.ContentFilter at compile time.
var _ pagecrawler.ContentFilter = (*trafilatura.Filter)(nil)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, html.Render(&b, n))
	return b.String()
}

const article = `<!DOCTYPE html>
<html>
<head><title>Getting Started - My Docs</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/docs">Documentation</a></li>
</ul>
</nav>
<article>
<h1>Getting Started</h1>
<p>This is important documentation content that should be extracted by the filter.</p>
<p>A second paragraph explains how to install the toolkit on a fresh machine.</p>
</article>
<footer><p>Copyright 2024</p></footer>
</body>
</html>`

func TestFilter_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		text := trafilatura.NewFilter().Extract(parse(t, article), "https://example.com/start")

		assert.Contains(t, text, "important documentation content")
		assert.Contains(t, text, "install the toolkit")
	})

	t.Run("applies the line filter", func(t *testing.T) {
		t.Parallel()

		text := trafilatura.NewFilter().Extract(parse(t, article), "https://example.com/start")

		require.NotEmpty(t, text)
		for _, line := range strings.Split(text, "\n") {
			assert.Greater(t, len(strings.Fields(line)), 3, "short line survived: %q", line)
		}
		assert.NotContains(t, text, "Copyright 2024")
	})

	t.Run("does not modify the input tree", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, article)
		before := render(t, doc)

		trafilatura.NewFilter().Extract(doc, "https://example.com/start")

		assert.Equal(t, before, render(t, doc))
	})

	t.Run("returns empty string for nil document", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, trafilatura.NewFilter().Extract(nil, "https://example.com/"))
	})

	t.Run("returns empty string for empty page", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, trafilatura.NewFilter().Extract(parse(t, "<html><body></body></html>"), "https://example.com/"))
	})
}
