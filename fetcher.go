package depthcrawl

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET against the URL and returns the response
	// body as text. The context controls timeout and cancellation.
	// Redirects are followed transparently; there is no retry.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
