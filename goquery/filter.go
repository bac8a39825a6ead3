package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
)

// Ensure Filter implements pagecrawler.ContentFilter at compile time.
var _ pagecrawler.ContentFilter = (*Filter)(nil)

// nonContentSelector matches subtrees that never carry readable text.
const nonContentSelector = "script, style, head, noscript, iframe"

// contentClassPattern loosely identifies a main content container by class.
var contentClassPattern = regexp.MustCompile(`content|main|article`)

// Mode controls how line structure survives text extraction.
type Mode int

const (
	// ModeLines breaks lines at block elements so the line filter can
	// drop short or navigational lines individually.
	ModeLines Mode = iota

	// ModeCollapsed joins the whole region into a single line before
	// filtering. The line filter then accepts or rejects the page as a unit.
	ModeCollapsed
)

// Filter strips chrome from a document and returns its readable text.
// It never modifies the tree it is given.
type Filter struct {
	mode Mode
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithMode sets the line handling mode. Defaults to ModeLines.
func WithMode(m Mode) FilterOption {
	return func(f *Filter) {
		f.mode = m
	}
}

// NewFilter creates a new Filter.
func NewFilter(opts ...FilterOption) *Filter {
	f := &Filter{mode: ModeLines}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Extract returns the cleaned text of doc, or "" when nothing survives.
//
// Script, style, head, noscript and iframe subtrees are dropped first, then
// every element IsChrome flags. Text is taken from the first main or
// article element, else the first element with a content-like class, else
// the whole remaining tree, and finally passed through pagecrawler.FilterLines.
func (f *Filter) Extract(doc *html.Node, _ string) string {
	if doc == nil {
		return ""
	}
	root := cloneTree(doc)
	if root == nil {
		return ""
	}

	d := goquery.NewDocumentFromNode(root)
	d.Find(nonContentSelector).Remove()
	removeMatching(d.Selection, IsChrome)

	region := mainRegion(d)

	var text string
	switch f.mode {
	case ModeCollapsed:
		var b strings.Builder
		collectText(&b, region)
		text = squash(b.String())
	default:
		text = TextLines(region)
	}
	if text == "" {
		return ""
	}
	return pagecrawler.FilterLines(text)
}

// mainRegion picks the node text is collected from.
func mainRegion(d *goquery.Document) *html.Node {
	if sel := d.Find("main, article").First(); sel.Length() > 0 {
		return sel.Get(0)
	}
	sel := d.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return contentClassPattern.MatchString(attr(s.Get(0), "class"))
	}).First()
	if sel.Length() > 0 {
		return sel.Get(0)
	}
	return d.Get(0)
}
