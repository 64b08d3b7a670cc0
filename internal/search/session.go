package search

import "github.com/ziadkadry99/docreader/internal/docstore"

// State is the display state of the search surface.
type State int

const (
	StateIdle State = iota
	StateTooShort
	StateNoResults
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTooShort:
		return "too-short"
	case StateNoResults:
		return "no-results"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Selection is the navigation request emitted when a result is chosen.
type Selection struct {
	DocumentID string `json:"document_id"`
	HeadingID  string `json:"heading_id,omitempty"`
	Query      string `json:"query"`
}

// Route is the path to navigate to: /{id} or /{id}#{heading}.
func (s Selection) Route() string {
	return route(s.DocumentID, s.HeadingID)
}

// Corpus supplies the documents to search. *docstore.Store satisfies it.
type Corpus interface {
	All() []docstore.Document
}

// Session is the state machine behind the search modal: it recomputes the
// result list on every query edit and tracks the keyboard/pointer selection.
// Selecting only emits a Selection; the corpus is never touched.
type Session struct {
	engine   Engine
	corpus   Corpus
	query    string
	state    State
	results  []Result
	selected int
}

// NewSession creates an idle session over corpus.
func NewSession(engine Engine, corpus Corpus) *Session {
	return &Session{engine: engine, corpus: corpus}
}

// SetQuery replaces the query, recomputes the results and resets the
// selection to the first entry.
func (s *Session) SetQuery(query string) State {
	s.query = query
	s.selected = 0
	s.results = nil

	switch {
	case query == "":
		s.state = StateIdle
	case s.engine.TooShort(query):
		s.state = StateTooShort
	default:
		s.results = s.engine.Search(s.corpus.All(), query)
		if len(s.results) == 0 {
			s.state = StateNoResults
		} else {
			s.state = StateResults
		}
	}
	return s.state
}

// Query returns the current query.
func (s *Session) Query() string { return s.query }

// State returns the current display state.
func (s *Session) State() State { return s.state }

// Results returns the current ranked results.
func (s *Session) Results() []Result { return s.results }

// Selected returns the index of the highlighted result.
func (s *Session) Selected() int { return s.selected }

// MoveDown advances the selection, stopping at the last result.
func (s *Session) MoveDown() {
	if s.selected < len(s.results)-1 {
		s.selected++
	}
}

// MoveUp moves the selection back, stopping at the first result.
func (s *Session) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

// Hover selects the result under the pointer. Out-of-range indexes are ignored.
func (s *Session) Hover(i int) bool {
	if i < 0 || i >= len(s.results) {
		return false
	}
	s.selected = i
	return true
}

// Select emits the selection for the highlighted result.
func (s *Session) Select() (Selection, bool) {
	return s.SelectAt(s.selected)
}

// SelectAt emits the selection for result i, as a pointer click does.
func (s *Session) SelectAt(i int) (Selection, bool) {
	if s.state != StateResults || i < 0 || i >= len(s.results) {
		return Selection{}, false
	}
	r := s.results[i]
	return Selection{
		DocumentID: r.Document.ID,
		HeadingID:  r.NearestHeadingID,
		Query:      r.SearchQuery,
	}, true
}

// Close discards the query and results. It never emits a selection.
func (s *Session) Close() {
	s.query = ""
	s.state = StateIdle
	s.results = nil
	s.selected = 0
}
