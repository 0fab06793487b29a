package depthcrawl

// LinkExtractor produces the distinct raw link strings found in a page.
type LinkExtractor interface {
	// Extract scans html and returns the deduplicated link targets,
	// sorted so that downstream truncation is deterministic. Arbitrary
	// non-HTML input yields an empty result, never an error.
	Extract(html string) []string
}
