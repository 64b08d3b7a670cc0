package markdown

import (
	"strconv"
	"unicode/utf16"
)

// TaskCheckID derives the persisted-state identifier of a rendered task
// checkbox from its label and the owning document. It is a 32-bit rolling
// hash (h*31 + c over UTF-16 code units) rendered as an unsigned base-36
// magnitude, so identifiers written by earlier browser builds still match.
func TaskCheckID(text, docID string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(text + docID)) {
		h = (h << 5) - h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
