// Package docstore holds the ordered, read-only collection of documents the
// reader serves and searches.
package docstore

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/docreader/internal/markdown"
)

// ErrNotFound is returned when a document id is not in the store.
var ErrNotFound = errors.New("document not found")

// Document is one markdown document of the corpus.
type Document struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Section   string             `json:"section"`
	Order     int                `json:"order"`
	Path      string             `json:"path,omitempty"`
	Headings  []markdown.Heading `json:"headings,omitempty"`
	Content   string             `json:"content,omitempty"`
	Checklist bool               `json:"checklist,omitempty"`
}

// Summary is the content-free view of a document used for navigation.
type Summary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Section string `json:"section"`
}

// Summary returns the navigation view of d.
func (d Document) Summary() Summary {
	return Summary{ID: d.ID, Title: d.Title, Section: d.Section}
}

// Section groups the documents that share a section label.
type Section struct {
	Name      string
	Documents []Summary
}

// Store is an ordered collection of documents with unique ids.
type Store struct {
	docs []Document
	byID map[string]int
}

// New builds a Store from docs in the given order. Headings are derived from
// content when the caller left them empty.
func New(docs ...Document) (*Store, error) {
	s := &Store{
		docs: make([]Document, 0, len(docs)),
		byID: make(map[string]int, len(docs)),
	}
	for _, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("document %q has an empty id", d.Title)
		}
		if _, dup := s.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate document id %q", d.ID)
		}
		if d.Headings == nil && d.Content != "" {
			d.Headings = markdown.ScanHeadings(d.Content)
		}
		s.byID[d.ID] = len(s.docs)
		s.docs = append(s.docs, d)
	}
	return s, nil
}

// Len returns the number of documents.
func (s *Store) Len() int { return len(s.docs) }

// All returns the documents in store order. The slice must not be modified.
func (s *Store) All() []Document { return s.docs }

// Summaries returns the navigation view of every document in store order.
func (s *Store) Summaries() []Summary {
	out := make([]Summary, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Summary()
	}
	return out
}

// Get returns the document with the given id.
func (s *Store) Get(id string) (Document, error) {
	i, ok := s.byID[id]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.docs[i], nil
}

// First returns the first document, if any.
func (s *Store) First() (Document, bool) {
	if len(s.docs) == 0 {
		return Document{}, false
	}
	return s.docs[0], true
}

// Neighbors returns the documents before and after id in store order.
func (s *Store) Neighbors(id string) (prev, next *Summary) {
	i, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	if i > 0 {
		p := s.docs[i-1].Summary()
		prev = &p
	}
	if i < len(s.docs)-1 {
		n := s.docs[i+1].Summary()
		next = &n
	}
	return prev, next
}

// Sections groups documents by section in first-appearance order.
func (s *Store) Sections() []Section {
	var sections []Section
	index := make(map[string]int)
	for _, d := range s.docs {
		i, ok := index[d.Section]
		if !ok {
			i = len(sections)
			index[d.Section] = i
			sections = append(sections, Section{Name: d.Section})
		}
		sections[i].Documents = append(sections[i].Documents, d.Summary())
	}
	return sections
}
