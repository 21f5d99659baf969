// FILE: pkg/slugify/slugify.go
package slugify

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-{2,}`)
)

// Make converts a category name into its URL-safe slug:
// lowercase, strip anything outside [a-z0-9\s-], whitespace runs become a
// single hyphen, hyphen runs collapse, leading/trailing hyphens trimmed.
// Idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
