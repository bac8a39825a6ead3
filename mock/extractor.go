package mock

import (
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
)

var _ pagecrawler.ContentFilter = (*ContentFilter)(nil)

// ContentFilter is a mock implementation of pagecrawler.ContentFilter.
type ContentFilter struct {
	ExtractFn func(doc *html.Node, pageURL string) string
}

func (f *ContentFilter) Extract(doc *html.Node, pageURL string) string {
	return f.ExtractFn(doc, pageURL)
}

var _ pagecrawler.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of pagecrawler.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc *html.Node, pageURL string, host string) []string
}

func (e *LinkExtractor) ExtractLinks(doc *html.Node, pageURL string, host string) []string {
	return e.ExtractLinksFn(doc, pageURL, host)
}
