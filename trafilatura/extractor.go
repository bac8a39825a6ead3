// Package trafilatura adapts go-trafilatura as a content filter.
package trafilatura

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	pcgoquery "github.com/alexotsu/docs-page-crawler/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Filter implements pagecrawler.ContentFilter at compile time.
var _ pagecrawler.ContentFilter = (*Filter)(nil)

// Filter extracts the main text of a page with go-trafilatura and then
// applies the same line filter as the heuristic extractor.
type Filter struct {
	opts trafilatura.Options
}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Extract returns the filtered main text of doc, or "" if trafilatura
// finds nothing. The caller's tree is not modified.
func (f *Filter) Extract(doc *html.Node, pageURL string) string {
	if doc == nil {
		return ""
	}

	opts := f.opts
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	root := goquery.NewDocumentFromNode(doc).Selection.Clone().Get(0)
	result, err := trafilatura.ExtractDocument(root, opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return ""
	}

	return pagecrawler.FilterLines(pcgoquery.TextLines(result.ContentNode))
}
