package mock

import (
	"context"

	"github.com/awalczak/depthcrawl"
)

var _ depthcrawl.DepthStore = (*DepthStore)(nil)

// DepthStore is a mock implementation of depthcrawl.DepthStore.
type DepthStore struct {
	EnsureLevelFn func(ctx context.Context, depth int) error
	WriteEntryFn  func(ctx context.Context, depth int, name, content string) error
	ListLevelFn   func(ctx context.Context, depth int) ([]string, error)
}

func (s *DepthStore) EnsureLevel(ctx context.Context, depth int) error {
	return s.EnsureLevelFn(ctx, depth)
}

func (s *DepthStore) WriteEntry(ctx context.Context, depth int, name, content string) error {
	return s.WriteEntryFn(ctx, depth, name, content)
}

func (s *DepthStore) ListLevel(ctx context.Context, depth int) ([]string, error) {
	return s.ListLevelFn(ctx, depth)
}
