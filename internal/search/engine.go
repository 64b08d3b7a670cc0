// Package search implements the live substring search over the document
// store and the result-list selection state machine that drives it.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/fold"
	"github.com/ziadkadry99/docreader/internal/markdown"
)

// DefaultMinQueryLength is the shortest query, in runes, that is searched.
const DefaultMinQueryLength = 2

// Snippet window around the first content match, in bytes.
const (
	SnippetBefore = 50
	SnippetAfter  = 100
	Ellipsis      = "..."
)

// MatchType records where a document matched. Title matches rank first.
type MatchType string

const (
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
)

// Result is one ranked search hit. Results are rebuilt on every query.
type Result struct {
	Document         docstore.Document
	MatchType        MatchType
	Snippet          string
	MatchCount       int
	NearestHeadingID string
	SearchQuery      string
}

// Route is the navigation target of the result: /{id} or /{id}#{heading}.
func (r Result) Route() string {
	return route(r.Document.ID, r.NearestHeadingID)
}

func route(docID, headingID string) string {
	if headingID == "" {
		return "/" + docID
	}
	return "/" + docID + "#" + headingID
}

// Engine applies configured limits on top of Search.
type Engine struct {
	MinQueryLength int // zero means DefaultMinQueryLength
	MaxResults     int // zero means unlimited
}

// Search runs the query with the engine's limits.
func (e Engine) Search(docs []docstore.Document, query string) []Result {
	minLen := e.MinQueryLength
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	results := search(docs, query, minLen)
	if e.MaxResults > 0 && len(results) > e.MaxResults {
		results = results[:e.MaxResults]
	}
	return results
}

// TooShort reports whether query is below the engine's minimum length.
func (e Engine) TooShort(query string) bool {
	minLen := e.MinQueryLength
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	return utf8.RuneCountInString(query) < minLen
}

// Search returns the documents matching query case-insensitively, title
// matches first, then by descending match count. Equal results keep the
// order of docs. Queries shorter than two runes return nothing.
func Search(docs []docstore.Document, query string) []Result {
	return search(docs, query, DefaultMinQueryLength)
}

func search(docs []docstore.Document, query string, minLen int) []Result {
	if utf8.RuneCountInString(query) < minLen {
		return nil
	}
	needle := fold.Lower(query)

	var results []Result
	for _, doc := range docs {
		title := fold.Lower(doc.Title)
		content := fold.Lower(doc.Content)

		titleCount := strings.Count(title, needle)
		first := strings.Index(content, needle)
		if titleCount == 0 && first == -1 {
			continue
		}

		r := Result{
			Document:    doc,
			MatchType:   MatchContent,
			MatchCount:  titleCount,
			SearchQuery: query,
		}
		if titleCount > 0 {
			r.MatchType = MatchTitle
		}
		if first >= 0 {
			r.MatchCount += strings.Count(content, needle)
			r.Snippet = snippet(doc.Content, first, len(needle))
			r.NearestHeadingID = nearestHeadingID(doc.Content, first)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.MatchType != b.MatchType {
			return a.MatchType == MatchTitle
		}
		return a.MatchCount > b.MatchCount
	})
	return results
}

// snippet cuts the excerpt around content[pos:pos+n]. The window is trimmed
// inward to whole words and marked with an ellipsis where it was truncated.
func snippet(content string, pos, n int) string {
	matchEnd := pos + n
	start := max(0, pos-SnippetBefore)
	end := min(len(content), matchEnd+SnippetAfter)

	for start < pos && !utf8.RuneStart(content[start]) {
		start++
	}
	for end > matchEnd && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}

	if start > 0 {
		if sp := strings.IndexByte(content[start:pos], ' '); sp >= 0 {
			start += sp + 1
		}
	}
	if end < len(content) {
		if sp := strings.LastIndexByte(content[matchEnd:end], ' '); sp > 0 {
			end = matchEnd + sp
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(Ellipsis)
	}
	b.WriteString(content[start:end])
	if end < len(content) {
		b.WriteString(Ellipsis)
	}
	return b.String()
}

// nearestHeadingID returns the slug of the last heading starting before
// pos, falling back to the first heading of the document.
func nearestHeadingID(content string, pos int) string {
	headings := markdown.ScanHeadings(content)
	if len(headings) == 0 {
		return ""
	}
	nearest := headings[0]
	for _, h := range headings {
		if h.Offset >= pos {
			break
		}
		nearest = h
	}
	return nearest.ID
}
