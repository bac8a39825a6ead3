package mock

import (
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
)

var _ pagecrawler.Parser = (*Parser)(nil)

// Parser is a mock implementation of pagecrawler.Parser.
type Parser struct {
	ParseFn func(body []byte, contentType string) (*html.Node, error)
}

func (p *Parser) Parse(body []byte, contentType string) (*html.Node, error) {
	return p.ParseFn(body, contentType)
}
