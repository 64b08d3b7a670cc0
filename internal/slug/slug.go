// Package slug derives URL-safe anchor identifiers from display text.
package slug

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Slugify lowercases s, strips HTML tags, collapses every run of characters
// outside [a-z0-9] into a single hyphen and trims hyphens from both ends.
// The result is empty when s holds no ASCII letters or digits.
func Slugify(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte(c)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
