// Package highlight marks the first occurrence of a search term inside a
// rendered page and removes the mark again after a fixed display period.
package highlight

import "github.com/ziadkadry99/docreader/internal/fold"

// Match locates a term inside one text node of a sequence.
type Match struct {
	Node   int
	Offset int
	Length int
}

// Run is a piece of a split text node.
type Run struct {
	Text        string
	Highlighted bool
}

// First returns the earliest case-insensitive occurrence of term across
// texts, scanning them in order.
func First(texts []string, term string) (Match, bool) {
	if term == "" {
		return Match{}, false
	}
	for n, text := range texts {
		if offsets := fold.IndexAll(text, term); len(offsets) > 0 {
			return Match{Node: n, Offset: offsets[0], Length: len(term)}, true
		}
	}
	return Match{}, false
}

// Split breaks text around the matched range. Empty leading or trailing
// runs are omitted.
func Split(text string, m Match) []Run {
	end := m.Offset + m.Length
	var runs []Run
	if m.Offset > 0 {
		runs = append(runs, Run{Text: text[:m.Offset]})
	}
	runs = append(runs, Run{Text: text[m.Offset:end], Highlighted: true})
	if end < len(text) {
		runs = append(runs, Run{Text: text[end:]})
	}
	return runs
}
