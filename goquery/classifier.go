package goquery

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// chromeTags are semantic elements that always hold site chrome.
var chromeTags = map[string]bool{
	"nav":    true,
	"header": true,
	"footer": true,
}

// chromeKeywords identify chrome by class token or id.
var chromeKeywords = []string{"navigation", "nav", "navbar", "menu", "header", "footer", "bottom"}

// chromeFragments catch compound names such as "mainNavWrapper" or "site-header-inner".
var chromeFragments = []string{"nav", "menu", "header", "footer"}

// IsChrome reports whether n is navigation, header or footer markup.
//
// Rules are applied in order and the first match wins:
//  1. the tag is nav, header or footer;
//  2. a class token equals one of the chrome keywords, ignoring case;
//  3. the id contains one of the chrome keywords, ignoring case;
//  4. the class or id value contains nav, menu, header or footer, ignoring case.
//
// Nodes that are not elements are never chrome.
func IsChrome(n *html.Node) bool {
	if !isElement(n) {
		return false
	}

	if chromeTags[tagName(n)] {
		return true
	}

	for _, token := range classTokens(n) {
		if slices.Contains(chromeKeywords, strings.ToLower(token)) {
			return true
		}
	}

	id := strings.ToLower(attr(n, "id"))
	if containsAny(id, chromeKeywords) {
		return true
	}

	class := strings.ToLower(attr(n, "class"))
	return containsAny(class, chromeFragments) || containsAny(id, chromeFragments)
}

func containsAny(s string, substrs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
