package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	pagecrawler "github.com/alexotsu/docs-page-crawler"
	"golang.org/x/net/html"
)

// Ensure LinkExtractor implements pagecrawler.LinkExtractor at compile time.
var _ pagecrawler.LinkExtractor = (*LinkExtractor)(nil)

// assetExtensions are path suffixes of non-text resources that are never crawled.
// Matching ignores case.
var assetExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".zip": true, ".gz": true, ".mp3": true, ".mp4": true,
}

// LinkExtractor harvests same-host hyperlinks from a document.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the absolute URLs of every anchor in doc whose
// resolved host equals host exactly and whose path is not a known asset.
// References are resolved against pageURL; ones that cannot be resolved are
// skipped. Each URL appears once, in document order. No other normalization
// is applied, so fragments and query strings are kept as written.
func (e *LinkExtractor) ExtractLinks(doc *html.Node, pageURL string, host string) []string {
	if doc == nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	goquery.NewDocumentFromNode(doc).Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host != host {
			return
		}
		if isAsset(resolved.Path) {
			return
		}

		s := resolved.String()
		if seen[s] {
			return
		}
		seen[s] = true
		links = append(links, s)
	})

	return links
}

// resolveURL resolves href against base. Returns nil if href cannot be parsed.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return base.ResolveReference(ref)
}

// isAsset reports whether the URL path ends in a known non-text extension.
func isAsset(p string) bool {
	return assetExtensions[path.Ext(strings.ToLower(p))]
}
