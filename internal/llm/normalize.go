package llm

import (
	"regexp"
	"strings"
)

var (
	leadingNoise  = regexp.MustCompile(`^[^[{]*`)
	trailingNoise = regexp.MustCompile(`[^}\]]*$`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Normalize applies best-effort repairs to a raw completion so it has a
// better chance of parsing as JSON: markdown fences are dropped, text before
// the first brace/bracket and after the last closer is removed, an
// unterminated top-level array/object gets its missing closer, and trailing
// commas before closers are deleted. The result is untrusted; the caller
// still parses and validates it.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = leadingNoise.ReplaceAllString(s, "")
	s = trailingNoise.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "[") && !strings.HasSuffix(s, "]") {
		s += "]"
	} else if strings.HasPrefix(s, "{") && !strings.HasSuffix(s, "}") {
		s += "}"
	}

	return trailingComma.ReplaceAllString(s, "$1")
}
