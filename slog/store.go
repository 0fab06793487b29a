package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awalczak/depthcrawl"
)

// Ensure LoggingStore implements depthcrawl.DepthStore.
var _ depthcrawl.DepthStore = (*LoggingStore)(nil)

// LoggingStore wraps a DepthStore with debug logging.
type LoggingStore struct {
	next   depthcrawl.DepthStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next depthcrawl.DepthStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// EnsureLevel delegates to the wrapped store and logs the operation.
func (s *LoggingStore) EnsureLevel(ctx context.Context, depth int) (err error) {
	defer func() {
		s.logger.Debug("ensure level", "depth", depth, "err", err)
	}()
	return s.next.EnsureLevel(ctx, depth)
}

// WriteEntry delegates to the wrapped store and logs the operation.
func (s *LoggingStore) WriteEntry(ctx context.Context, depth int, name, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write entry",
			"depth", depth,
			"name", name,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteEntry(ctx, depth, name, content)
}

// ListLevel delegates to the wrapped store and logs the operation.
func (s *LoggingStore) ListLevel(ctx context.Context, depth int) (names []string, err error) {
	defer func() {
		s.logger.Debug("list level", "depth", depth, "count", len(names), "err", err)
	}()
	return s.next.ListLevel(ctx, depth)
}
