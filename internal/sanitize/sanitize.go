// Package sanitize cleans freeform job posting text before it is embedded in
// a prompt.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	specialPattern = regexp.MustCompile(`[^\w\s.,;:()-]`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Text removes URL-shaped substrings, replaces characters outside the basic
// word/punctuation set with spaces, collapses whitespace runs and trims.
func Text(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = specialPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
