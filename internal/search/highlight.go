package search

import "github.com/ziadkadry99/docreader/internal/fold"

// Segment is a run of display text, either matching the query or not.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// Highlight splits text into segments, marking every case-insensitive,
// non-overlapping occurrence of query. Each field is highlighted on its own.
func Highlight(text, query string) []Segment {
	if query == "" || text == "" {
		return []Segment{{Text: text}}
	}
	var segments []Segment
	cursor := 0
	for _, i := range fold.IndexAll(text, query) {
		if i > cursor {
			segments = append(segments, Segment{Text: text[cursor:i]})
		}
		segments = append(segments, Segment{Text: text[i : i+len(query)], Match: true})
		cursor = i + len(query)
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}
	return segments
}
