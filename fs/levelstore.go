// Package fs provides a filesystem-backed depth store: one directory
// per depth level, named by the level's decimal integer, holding one
// .html file per visited URL with the raw fetched body verbatim.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/awalczak/depthcrawl"
)

// Ensure LevelStore implements depthcrawl.DepthStore at compile time.
var _ depthcrawl.DepthStore = (*LevelStore)(nil)

// LevelStore persists pages under root/<depth>/<name>. Concurrent
// writes to distinct names are safe; writing the same name twice
// overwrites, so the last write wins.
type LevelStore struct {
	root string
}

// NewLevelStore creates a LevelStore rooted at the given directory.
func NewLevelStore(root string) *LevelStore {
	return &LevelStore{root: root}
}

func (s *LevelStore) levelDir(depth int) string {
	return filepath.Join(s.root, strconv.Itoa(depth))
}

// EnsureLevel creates the directory for a depth level. Idempotent.
func (s *LevelStore) EnsureLevel(ctx context.Context, depth int) error {
	if depth < 0 {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "negative depth %d", depth)
	}
	return os.MkdirAll(s.levelDir(depth), 0755)
}

// WriteEntry writes content to root/<depth>/<name>.
func (s *LevelStore) WriteEntry(ctx context.Context, depth int, name, content string) error {
	if name == "" {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "entry name required")
	}
	return os.WriteFile(filepath.Join(s.levelDir(depth), name), []byte(content), 0644)
}

// ListLevel returns the .html filenames persisted at a depth level.
// A level whose directory was never created yields an empty list.
func (s *LevelStore) ListLevel(ctx context.Context, depth int) ([]string, error) {
	entries, err := os.ReadDir(s.levelDir(depth))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
