package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/awalczak/depthcrawl"
)

// DefaultConcurrency bounds the worker pool when Engine.Concurrency is unset.
const DefaultConcurrency = 8

// Revisit guard sizing for the Bloom filter.
const (
	// guardExpectedURLs is the expected number of URLs per run.
	guardExpectedURLs = 10000
	// guardFalsePositiveRate is the acceptable false positive rate;
	// a false positive skips a refetch, never corrupts stored data.
	guardFalsePositiveRate = 0.01
)

// Engine orchestrates the crawl: normalize, fetch, persist, extract,
// filter, expand. Expansion is breadth-first, one depth level at a
// time. Within a level pages are fetched concurrently by a bounded
// worker pool; the next level starts only after every page of the
// current level has completed, so the uniqueness filter always reads a
// fully written prior level.
type Engine struct {
	Fetcher   depthcrawl.Fetcher
	Store     depthcrawl.DepthStore
	Extractor depthcrawl.LinkExtractor

	// Concurrency bounds the worker pool within a level.
	// Defaults to DefaultConcurrency when zero or negative.
	Concurrency int

	// Once skips URLs already fetched earlier in the run. Off by
	// default: the legacy crawler refetches repeated URLs across levels.
	Once bool
}

// Options configures a single crawl run.
type Options struct {
	// MaxURLs caps the number of links followed from one page.
	MaxURLs int

	// MaxDepth is the last level fetched; pages at MaxDepth are
	// persisted but not expanded. Level 0 is the seed.
	MaxDepth int

	// Unique filters extracted links against the filenames already
	// persisted at the previous depth level.
	Unique bool
}

// Result summarizes a crawl run.
type Result struct {
	Saved    int
	Failed   int
	Bytes    int
	Levels   int
	Failures []Failure
}

// Failure records a branch that was skipped after a fetch or
// persistence error.
type Failure struct {
	URL   string
	Depth int
	Err   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressLevelStarted ProgressType = iota
	ProgressSaved
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type  ProgressType
	Depth int
	Total int // pages in the level, for ProgressLevelStarted
	URL   string
	Name  string // stored filename, for ProgressSaved
	Hash  string // content hash, for ProgressSaved
	Error error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL in a level.
type pageResult struct {
	raw     string
	url     string // normalized form, empty if normalization failed
	name    string
	hash    string
	bytes   int
	links   []string
	skipped bool // no host after normalization, or revisit guard hit
	err     error
}

// revisitGuard is the optional whole-run deduplication filter.
// bloom.BloomFilter is not safe for concurrent use, so access is
// serialized here.
type revisitGuard struct {
	mu   sync.Mutex
	seen *bloom.BloomFilter
}

func (g *revisitGuard) visit(url string) bool {
	if g == nil {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen.TestString(url) {
		return false
	}
	g.seen.AddString(url)
	return true
}

// Crawl runs the full expansion from seed and returns the run summary.
// Fetch and write errors fail only their own branch: the page is
// recorded in Result.Failures, its links are not followed, and sibling
// branches continue. Context cancellation and level-partition errors
// abort the run.
func (e *Engine) Crawl(ctx context.Context, seed string, opts Options, progress ProgressFunc) (*Result, error) {
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var guard *revisitGuard
	if e.Once {
		guard = &revisitGuard{seen: bloom.NewWithEstimates(guardExpectedURLs, guardFalsePositiveRate)}
	}

	result := &Result{}
	level := []string{seed}

	for depth := 0; len(level) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := e.Store.EnsureLevel(ctx, depth); err != nil {
			return result, err
		}

		emit(progress, ProgressEvent{Type: ProgressLevelStarted, Depth: depth, Total: len(level)})

		// The previous level is complete by now; snapshot its
		// filenames once for the whole level.
		var prior map[string]struct{}
		if opts.Unique && depth > 0 {
			names, err := e.Store.ListLevel(ctx, depth-1)
			if err != nil {
				return result, err
			}
			prior = make(map[string]struct{}, len(names))
			for _, name := range names {
				prior[name] = struct{}{}
			}
		}

		// Fetch the whole level through the worker pool. Workers write
		// to distinct indices, so results keep the input order and the
		// g.Wait below is the per-level barrier.
		results := make([]pageResult, len(level))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, raw := range level {
			g.Go(func() error {
				results[i] = e.processPage(gctx, raw, depth, guard)
				return nil
			})
		}
		_ = g.Wait()

		var next []string
		for _, pr := range results {
			switch {
			case pr.skipped:
				emit(progress, ProgressEvent{Type: ProgressSkipped, Depth: depth, URL: pr.raw, Error: pr.err})
			case pr.err != nil:
				result.Failed++
				result.Failures = append(result.Failures, Failure{URL: pr.raw, Depth: depth, Err: pr.err})
				emit(progress, ProgressEvent{Type: ProgressFailed, Depth: depth, URL: pr.raw, Error: pr.err})
			default:
				result.Saved++
				result.Bytes += pr.bytes
				emit(progress, ProgressEvent{
					Type:  ProgressSaved,
					Depth: depth,
					URL:   pr.url,
					Name:  pr.name,
					Hash:  pr.hash,
				})
				if depth < opts.MaxDepth {
					links := pr.links
					// The uniqueness filter is a raw set difference
					// between extracted link strings and the previous
					// level's stored filenames, exactly as the legacy
					// crawler computed it. The two sides have
					// different string shapes, so only links that
					// literally equal a stored filename are removed.
					if prior != nil {
						links = reject(links, prior)
					}
					if len(links) > opts.MaxURLs {
						links = links[:opts.MaxURLs]
					}
					next = append(next, links...)
				}
			}
		}

		result.Levels = depth + 1
		level = next
	}

	emit(progress, ProgressEvent{Type: ProgressFinished})

	return result, nil
}

// processPage runs one crawl step: normalize, fetch, persist, extract.
func (e *Engine) processPage(ctx context.Context, raw string, depth int, guard *revisitGuard) pageResult {
	result := pageResult{raw: raw}

	normalized, err := Normalize(raw)
	if err != nil {
		// Terminal no-op for the branch: no fetch, no recursion.
		result.skipped = true
		result.err = err
		return result
	}
	result.url = normalized

	if !guard.visit(normalized) {
		result.skipped = true
		return result
	}

	html, err := e.Fetcher.Fetch(ctx, normalized)
	if err != nil {
		result.err = err
		return result
	}

	result.name = Encode(normalized)
	if err := e.Store.WriteEntry(ctx, depth, result.name, html); err != nil {
		result.err = err
		return result
	}

	result.bytes = len(html)
	result.hash = computeHash(html)
	result.links = e.Extractor.Extract(html)

	return result
}

// reject returns links with members of the stored-name set removed.
func reject(links []string, stored map[string]struct{}) []string {
	kept := links[:0:0]
	for _, link := range links {
		if _, ok := stored[link]; ok {
			continue
		}
		kept = append(kept, link)
	}
	return kept
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
