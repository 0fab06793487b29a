package depthcrawl

import "context"

// DepthStore persists fetched pages under a (depth, filename) key.
// Depth levels partition the keyspace; level 0 holds the seed page.
// Entries are write-once in normal operation, but colliding filenames
// overwrite: the last write wins. Stores must support concurrent
// writes to distinct keys without corruption.
type DepthStore interface {
	// EnsureLevel creates the partition for a depth level if it does
	// not already exist. It is idempotent.
	EnsureLevel(ctx context.Context, depth int) error

	// WriteEntry persists content under (depth, name).
	WriteEntry(ctx context.Context, depth int, name, content string) error

	// ListLevel enumerates the filenames persisted at a depth level.
	// A level that was never written yields an empty list, not an error.
	ListLevel(ctx context.Context, depth int) ([]string, error)
}
