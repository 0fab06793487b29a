package sqlite

import (
	"context"

	"github.com/awalczak/depthcrawl"
)

// Compile-time interface verification.
var _ depthcrawl.DepthStore = (*Store)(nil)

// Store implements depthcrawl.DepthStore using SQLite. Levels are
// rows partitioned by the depth column; colliding names upsert, so
// the last write wins.
type Store struct {
	db *DB
}

// NewStore creates a new Store on an opened DB.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// EnsureLevel validates the depth. The keyspace is partitioned by the
// depth column, so levels need no explicit creation.
func (s *Store) EnsureLevel(ctx context.Context, depth int) error {
	if depth < 0 {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "negative depth %d", depth)
	}
	return nil
}

// WriteEntry persists content under (depth, name).
func (s *Store) WriteEntry(ctx context.Context, depth int, name, content string) error {
	if name == "" {
		return depthcrawl.Errorf(depthcrawl.EINVALID, "entry name required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (depth, name, content)
		VALUES (?, ?, ?)
		ON CONFLICT (depth, name) DO UPDATE SET content = excluded.content
	`, depth, name, content)

	return err
}

// ListLevel returns the names persisted at a depth level, sorted.
func (s *Store) ListLevel(ctx context.Context, depth int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM pages WHERE depth = ? ORDER BY name
	`, depth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReadEntry returns the content stored under (depth, name).
// Returns ENOTFOUND if no entry exists.
func (s *Store) ReadEntry(ctx context.Context, depth int, name string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM pages WHERE depth = ? AND name = ?
	`, depth, name).Scan(&content)
	if err != nil {
		return "", depthcrawl.Errorf(depthcrawl.ENOTFOUND, "no entry %q at depth %d", name, depth)
	}
	return content, nil
}
