// Package crawl implements the depth-bounded crawl algorithm:
// URL normalization, link extraction, filename encoding, and the
// level-by-level engine that ties them together.
package crawl

import (
	"net/url"
	"strings"

	"github.com/awalczak/depthcrawl"
)

// Normalize canonicalizes a raw link into an absolute HTTPS URL with a
// www-prefixed host, e.g. "example.com" -> "https://www.example.com".
//
// The rewrite is textual, not URL-grammar-aware: host detection
// searches for the substring "www." anywhere in the input and keeps
// everything from its first occurrence onward, so a path or query that
// happens to contain "www." truncates the URL at that point. This
// preserves the legacy crawler's behavior and the keyspaces derived
// from it; the quirk is pinned down by tests.
//
// Returns EINVALID if the rewritten string does not parse as a URL
// with a host. Callers treat that as a terminal no-op for the branch.
func Normalize(raw string) (string, error) {
	s := raw

	// Protocol-relative inputs are treated as bare.
	if strings.HasPrefix(s, "//") {
		s = s[2:]
	}

	if idx := strings.Index(s, "www."); idx != -1 {
		s = s[idx:]
	} else {
		s = "www." + s
	}

	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	if !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", depthcrawl.Errorf(depthcrawl.EINVALID, "no host in %q", raw)
	}

	return s, nil
}
