package mock

import "github.com/awalczak/depthcrawl"

var _ depthcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of depthcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractFn func(html string) []string
}

func (e *LinkExtractor) Extract(html string) []string {
	return e.ExtractFn(html)
}
