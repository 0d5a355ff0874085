// Package htmlsanitize strips markup from user-supplied text before it is
// stored. Deadline texts are plain text; any HTML a client sends is reduced
// to its text content.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element. Content of script and style elements is
// dropped entirely.
var strict = bluemonday.StrictPolicy()

// PlainText returns s with all markup removed and entities decoded.
func PlainText(s string) string {
	if IsPlainText(s) {
		return s
	}
	return html.UnescapeString(strict.Sanitize(s))
}

// IsPlainText reports whether s contains nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<")
}
