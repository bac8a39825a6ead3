// Package readability adapts go-readability as a content filter.
package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	pcgoquery "github.com/alexotsu/docs-page-crawler/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Ensure Filter implements pagecrawler.ContentFilter at compile time.
var _ pagecrawler.ContentFilter = (*Filter)(nil)

// Filter extracts the article text of a page with go-readability and then
// applies the same line filter as the heuristic extractor.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Extract returns the filtered article text of doc, or "" if readability
// cannot find an article. The caller's tree is not modified.
func (f *Filter) Extract(doc *html.Node, pageURL string) string {
	if doc == nil {
		return ""
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}

	// go-readability prunes the tree it is given.
	root := goquery.NewDocumentFromNode(doc).Selection.Clone().Get(0)
	article, err := readability.FromDocument(root, u)
	if err != nil || article.Content == "" {
		return ""
	}

	// The article is re-parsed so line breaks follow its block structure
	// rather than the source formatting.
	content, err := html.Parse(strings.NewReader(article.Content))
	if err != nil {
		return ""
	}
	return pagecrawler.FilterLines(pcgoquery.TextLines(content))
}
