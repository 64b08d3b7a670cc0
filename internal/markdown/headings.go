package markdown

import (
	"strings"

	"github.com/ziadkadry99/docreader/internal/slug"
)

// Heading is a document heading with its anchor identifier.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
	// Offset is the byte offset of the heading line in the raw markdown.
	// Only ScanHeadings sets it.
	Offset int `json:"-"`
}

// ScanHeadings returns the ATX headings (# through ######) of content in
// source order. Lines inside fenced code blocks are ignored so that shell
// comments do not become anchors that were never rendered.
func ScanHeadings(content string) []Heading {
	var headings []Heading
	var fence string
	offset := 0
	for offset <= len(content) {
		end := strings.IndexByte(content[offset:], '\n')
		var line string
		if end == -1 {
			line = content[offset:]
		} else {
			line = content[offset : offset+end]
		}
		line = strings.TrimSuffix(line, "\r")

		trimmed := strings.TrimLeft(line, " ")
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		default:
			if h, ok := parseHeadingLine(line); ok {
				h.Offset = offset
				headings = append(headings, h)
			}
		}

		if end == -1 {
			break
		}
		offset += end + 1
	}
	return headings
}

// parseHeadingLine recognises a heading that starts at column zero.
func parseHeadingLine(line string) (Heading, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) {
		return Heading{}, false
	}
	if line[level] != ' ' && line[level] != '\t' {
		return Heading{}, false
	}
	text := strings.TrimSpace(line[level:])
	// Optional closing sequence: "## Title ##".
	if i := strings.LastIndexFunc(text, func(r rune) bool { return r != '#' }); i >= 0 && i < len(text)-1 {
		if text[i] == ' ' || text[i] == '\t' {
			text = strings.TrimSpace(text[:i])
		}
	}
	if text == "" {
		return Heading{}, false
	}
	return Heading{
		ID:    slug.Slugify(text),
		Text:  text,
		Level: level,
	}, true
}
