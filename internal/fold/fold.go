// Package fold provides case-insensitive matching that keeps byte offsets
// valid in the original string.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lower lowercases s rune by rune, leaving any rune whose lowercase form
// has a different encoded length (and any invalid byte) untouched, so
// len(Lower(s)) == len(s) and offsets carry over.
func Lower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if l := unicode.ToLower(r); utf8.RuneLen(l) == size {
			b.WriteRune(l)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// IndexAll returns the byte offsets of every non-overlapping,
// case-insensitive occurrence of term in text.
func IndexAll(text, term string) []int {
	if term == "" {
		return nil
	}
	haystack := Lower(text)
	needle := Lower(term)
	var offsets []int
	for cursor := 0; cursor <= len(haystack)-len(needle); {
		i := strings.Index(haystack[cursor:], needle)
		if i == -1 {
			break
		}
		offsets = append(offsets, cursor+i)
		cursor += i + len(needle)
	}
	return offsets
}
