package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Clean strips tag-like markup and a leading "You: " speaker label from
// a raw chat message. Empty input yields an empty string.
func Clean(message string) string {
	cleaned := tagPattern.ReplaceAllString(message, "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "You: ")
	return strings.TrimSpace(cleaned)
}
