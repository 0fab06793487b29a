// Package depthcrawl implements a depth-bounded web crawler. Starting
// from a seed URL it fetches HTML, persists each page under a
// depth-numbered partition of a key-value store, extracts hyperlinks,
// and expands into them level by level up to a configured maximum
// depth, with a per-page fan-out cap and an optional uniqueness filter
// against the previous level.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., fs/,
// sqlite/, http/, goquery/); the crawl algorithm itself lives in crawl/.
package depthcrawl
