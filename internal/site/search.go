package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/docreader/internal/search"
)

// SearchEntry is one document in the static search index. The page script
// runs the same matching rules over these entries when no server is present.
type SearchEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Content string `json:"content"`
}

// SearchHit is one result of the /api/search endpoint.
type SearchHit struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Section         string           `json:"section"`
	MatchType       search.MatchType `json:"match_type"`
	MatchCount      int              `json:"match_count"`
	Snippet         string           `json:"snippet,omitempty"`
	HeadingID       string           `json:"heading_id,omitempty"`
	Route           string           `json:"route"`
	Query           string           `json:"query"`
	TitleSegments   []search.Segment `json:"title_segments"`
	SnippetSegments []search.Segment `json:"snippet_segments,omitempty"`
}

// SearchResponse is the body of the /api/search endpoint.
type SearchResponse struct {
	Query   string      `json:"query"`
	State   string      `json:"state"`
	Results []SearchHit `json:"results"`
}

// Search runs query against the current store.
func (s *Site) Search(query string) SearchResponse {
	sess := search.NewSession(s.opts.Engine, s)
	state := sess.SetQuery(query)

	resp := SearchResponse{Query: query, State: state.String(), Results: []SearchHit{}}
	for _, r := range sess.Results() {
		hit := SearchHit{
			ID:            r.Document.ID,
			Title:         r.Document.Title,
			Section:       r.Document.Section,
			MatchType:     r.MatchType,
			MatchCount:    r.MatchCount,
			Snippet:       r.Snippet,
			HeadingID:     r.NearestHeadingID,
			Route:         r.Route(),
			Query:         r.SearchQuery,
			TitleSegments: search.Highlight(r.Document.Title, query),
		}
		if r.Snippet != "" {
			hit.SnippetSegments = search.Highlight(r.Snippet, query)
		}
		resp.Results = append(resp.Results, hit)
	}
	return resp
}

// searchIndex returns the static index entries for the current store.
func (s *Site) searchIndex() []SearchEntry {
	docs := s.Store().All()
	entries := make([]SearchEntry, len(docs))
	for i, d := range docs {
		entries[i] = SearchEntry{ID: d.ID, Title: d.Title, Section: d.Section, Content: d.Content}
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
