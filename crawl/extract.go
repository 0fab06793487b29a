package crawl

import (
	"regexp"
	"sort"

	"github.com/awalczak/depthcrawl"
)

// hrefPattern matches double-quoted href attributes, case-insensitive
// on the attribute name. Single-quoted and unquoted attributes are
// deliberately not matched, and captured values are kept verbatim:
// no entity decoding, no relative-to-absolute resolution.
var hrefPattern = regexp.MustCompile(`(?i)href\s*=\s*"([^"]+)"`)

// Compile-time interface verification.
var _ depthcrawl.LinkExtractor = (*PatternExtractor)(nil)

// PatternExtractor extracts links by scanning markup for href="..."
// occurrences. It never fails on arbitrary input; text without matches
// yields an empty result. The goquery package provides a DOM-based
// alternative for markup this pattern under-reports.
type PatternExtractor struct{}

// NewPatternExtractor creates a new PatternExtractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract returns the distinct captured href values, sorted.
func (e *PatternExtractor) Extract(html string) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, m := range hrefPattern.FindAllStringSubmatch(html, -1) {
		link := m[1]
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
