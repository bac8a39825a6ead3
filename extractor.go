package pagecrawler

import "golang.org/x/net/html"

// Parser turns a fetched body into a document tree.
type Parser interface {
	// Parse decodes body according to contentType (which may be empty)
	// and returns the root of the parsed tree. Malformed markup yields a
	// best-effort tree rather than an error.
	Parse(body []byte, contentType string) (*html.Node, error)
}

// ContentFilter extracts readable body text from a document tree.
type ContentFilter interface {
	// Extract returns the cleaned text of the page, or the empty string
	// when no content survives filtering. It must not modify doc and
	// must never fail: structural problems yield "".
	Extract(doc *html.Node, pageURL string) string
}

// LinkExtractor harvests crawlable links from a document tree.
type LinkExtractor interface {
	// ExtractLinks returns absolute URLs found in doc, resolved against
	// pageURL, restricted to the given host and stripped of known asset
	// links. The result is deduplicated within the page only.
	ExtractLinks(doc *html.Node, pageURL string, host string) []string
}
