// Package htmlutil cleans HTML product descriptions for feed targets that
// expect plain text.
package htmlutil

import (
	"regexp"
	"strings"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// StripTags removes script and style blocks with their contents, then every
// remaining tag, and collapses runs of whitespace.
func StripTags(input string) string {
	cleaned := scriptPattern.ReplaceAllString(input, " ")
	cleaned = stylePattern.ReplaceAllString(cleaned, " ")
	cleaned = tagPattern.ReplaceAllString(cleaned, " ")
	cleaned = spacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Truncate cuts input to at most limit runes, appending an ellipsis when
// anything was removed.
func Truncate(input string, limit int) string {
	runes := []rune(input)
	if limit <= 0 || len(runes) <= limit {
		return input
	}
	return string(runes[:limit]) + "..."
}
