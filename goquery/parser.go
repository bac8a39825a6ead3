package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements pagecrawler.Parser at compile time.
var _ pagecrawler.Parser = (*Parser)(nil)

// Parser builds document trees from fetched bodies.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes body to UTF-8, using the Content-Type header and any
// <meta charset> declaration, and parses it as HTML. The HTML parser
// recovers from malformed markup, so only decoding failures are errors.
func (p *Parser) Parse(body []byte, contentType string) (*html.Node, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, pagecrawler.Errorf(pagecrawler.EPARSE, "failed to decode body: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagecrawler.Errorf(pagecrawler.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc.Get(0), nil
}
