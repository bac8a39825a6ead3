package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
)

// blockTags start a new line when text is collected line by line.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "details": true, "div": true,
	"dl": true, "dt": true, "figcaption": true, "figure": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "summary": true, "table": true, "tbody": true,
	"tfoot": true, "thead": true, "tr": true, "ul": true,
}

// isElement reports whether n is a non-nil element node with a tag name.
func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data != ""
}

// tagName returns the lower-cased tag of an element, or "" for anything else.
func tagName(n *html.Node) string {
	if !isElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// attr returns the value of the named attribute, or "" when it is absent.
func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// classTokens splits the class attribute into its whitespace-separated tokens.
func classTokens(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// cloneTree returns a detached deep copy of the tree rooted at n.
func cloneTree(n *html.Node) *html.Node {
	clone := goquery.NewDocumentFromNode(n).Selection.Clone()
	if clone.Length() == 0 {
		return nil
	}
	return clone.Get(0)
}

// removeMatching detaches every element below sel for which match returns
// true, taking the element's whole subtree with it.
func removeMatching(sel *goquery.Selection, match func(*html.Node) bool) {
	sel.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s.Get(0))
	}).Remove()
}

// collectText joins every text node below n with single spaces.
func collectText(b *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// newlines flattens line breaks inside text nodes; only block elements start lines.
var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// collectLines is like collectText but breaks lines at block element boundaries.
func collectLines(b *strings.Builder, n *html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(newlines.Replace(n.Data))
		b.WriteByte(' ')
		return
	}
	block := blockTags[tagName(n)]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

// squash collapses runs of whitespace, including newlines, to single spaces.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TextLines returns the text under n with a line break at every block
// element boundary and whitespace collapsed within each line.
func TextLines(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectLines(&b, n)
	return pagecrawler.NormalizeLines(b.String())
}
