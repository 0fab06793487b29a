// Package goquery provides a DOM-based link extractor.
package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/awalczak/depthcrawl"
)

// Compile-time interface verification.
var _ depthcrawl.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor targets by parsing the document rather
// than pattern-matching the markup. Unlike crawl.PatternExtractor it
// sees single-quoted and unquoted attributes and returns
// entity-decoded values; select it when fidelity to real-world markup
// matters more than byte-for-byte legacy behavior.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the distinct non-empty href values of anchor
// elements, sorted. Input the parser cannot make sense of yields an
// empty result, never an error.
func (e *Extractor) Extract(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})

	sort.Strings(links)
	return links
}
