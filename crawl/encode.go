package crawl

import (
	"regexp"
	"strings"
)

var (
	unsafeChars  = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	schemePrefix = regexp.MustCompile(`^https?://`)
)

// Sanitize replaces every character outside [A-Za-z0-9.-] with an
// underscore, yielding a filesystem-safe string.
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// LegacyKey strips a leading http:// or https:// and replaces dots
// with underscores. Slashes are left intact: the legacy crawler
// computed a slash replacement and discarded the result. The transform
// is retained as the legacy identity form, but Encode does not consume
// it when building the on-disk name.
func LegacyKey(s string) string {
	out := schemePrefix.ReplaceAllString(s, "")
	return strings.ReplaceAll(out, ".", "_")
}

// Encode derives the on-disk filename for a normalized URL from its
// sanitized form. Distinct URLs can collide after sanitization; the
// store's last write wins.
func Encode(url string) string {
	return Sanitize(url) + ".html"
}
