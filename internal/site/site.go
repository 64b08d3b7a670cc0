// Package site renders the document store as an HTML documentation site,
// either served live or written out as static files.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/docreader/internal/checklist"
	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/highlight"
	"github.com/ziadkadry99/docreader/internal/kvstore"
	"github.com/ziadkadry99/docreader/internal/markdown"
	"github.com/ziadkadry99/docreader/internal/search"
)

// Options configures a Site.
type Options struct {
	Title        string
	DefaultTheme kvstore.Theme
	Highlight    highlight.Timing
	Engine       search.Engine
	Logger       *slog.Logger
}

// Site renders pages for the current document store. The store can be
// swapped at runtime when the docs directory changes.
type Site struct {
	opts   Options
	state  kvstore.Store
	logger *slog.Logger

	mu    sync.RWMutex
	store *docstore.Store

	// tasksMu serialises read-modify-write of the task state map.
	tasksMu sync.Mutex

	pipeline       *markdown.Pipeline
	staticPipeline *markdown.Pipeline
	printPipeline  *markdown.Pipeline
	staticPrint    *markdown.Pipeline

	page  *template.Template
	print *template.Template
	css   string
	hub   *Hub
}

// New creates a Site over store, persisting reader state to state.
func New(store *docstore.Store, state kvstore.Store, opts Options) (*Site, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "Documentation"
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = kvstore.ThemeSystem
	}
	if opts.Highlight == (highlight.Timing{}) {
		opts.Highlight = highlight.DefaultTiming()
	}

	page, err := template.New("page").Funcs(templateFuncs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	printTmpl, err := template.New("print").Funcs(templateFuncs).Parse(printTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing print template: %w", err)
	}
	chromaCSS, err := markdown.ChromaCSS()
	if err != nil {
		return nil, fmt.Errorf("generating code styles: %w", err)
	}

	return &Site{
		opts:           opts,
		state:          state,
		logger:         opts.Logger,
		store:          store,
		pipeline:       markdown.New(),
		staticPipeline: markdown.New(markdown.WithLinkSuffix(".html")),
		printPipeline:  markdown.New(markdown.WithInlineHighlighting()),
		staticPrint:    markdown.New(markdown.WithInlineHighlighting(), markdown.WithLinkSuffix(".html")),
		page:           page,
		print:          printTmpl,
		css:            cssContent + "\n" + chromaCSS,
		hub:            NewHub(opts.Logger),
	}, nil
}

// Store returns the current document store.
func (s *Site) Store() *docstore.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// All implements search.Corpus over the current store.
func (s *Site) All() []docstore.Document {
	return s.Store().All()
}

// Reload swaps in a freshly loaded store and tells connected browsers to
// reload.
func (s *Site) Reload(store *docstore.Store) {
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	s.logger.Info("documents reloaded", "count", store.Len())
	s.hub.Broadcast(liveMessage{Type: "reload"})
}

// Hub returns the live-reload hub.
func (s *Site) Hub() *Hub { return s.hub }

// CSS returns the site stylesheet, including code highlighting classes.
func (s *Site) CSS() string { return s.css }

// links describes how pages address each other: live routes ("/id") or
// relative static files ("../id.html").
type links struct {
	base string
	ext  string
}

var serveLinks = links{base: "/", ext: ""}

func staticLinks(docID string) links {
	return links{base: strings.Repeat("../", strings.Count(docID, "/")), ext: ".html"}
}

func (l links) doc(id string) string { return l.base + id + l.ext }

func (l links) static() bool { return l.ext != "" }

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title        string
	SiteTitle    string
	DocID        string
	Content      template.HTML
	Sidebar      template.HTML
	TOC          []markdown.Heading
	Prev, Next   *navLink
	Checklist    bool
	Items        []checklist.Item
	ItemsDone    int
	BasePath     string
	Ext          string
	Static       bool
	Theme        string
	PrintHref    string
	SettleMS     int64
	DisplayMS    int64
	FadeMS       int64
	MinQuery     int
	CopyFeedback int
}

type navLink struct {
	Href  string
	Title string
}

func (s *Site) pageData(ctx context.Context, doc docstore.Document, store *docstore.Store, l links, body string) pageData {
	data := pageData{
		Title:        doc.Title,
		SiteTitle:    s.opts.Title,
		DocID:        doc.ID,
		Content:      template.HTML(body),
		Sidebar:      template.HTML(sidebarHTML(store.Sections(), doc.ID, l)),
		TOC:          tableOfContents(doc.Headings),
		Checklist:    doc.Checklist,
		BasePath:     l.base,
		Ext:          l.ext,
		Static:       l.static(),
		Theme:        string(s.opts.DefaultTheme),
		PrintHref:    l.base + "print/" + doc.ID + l.ext,
		SettleMS:     s.opts.Highlight.Settle.Milliseconds(),
		DisplayMS:    s.opts.Highlight.Display.Milliseconds(),
		FadeMS:       s.opts.Highlight.Fade.Milliseconds(),
		MinQuery:     s.minQueryLength(),
		CopyFeedback: markdown.CopyFeedbackMillis,
	}
	if !l.static() && s.state != nil {
		theme, err := kvstore.LoadTheme(ctx, s.state, s.opts.DefaultTheme, s.logger)
		if err != nil {
			s.logger.Warn("loading theme", "error", err)
		}
		data.Theme = string(theme)
	}
	if doc.Checklist {
		data.Items, data.ItemsDone = s.checklistItems(ctx, doc, l)
	}
	prev, next := store.Neighbors(doc.ID)
	if prev != nil {
		data.Prev = &navLink{Href: l.doc(prev.ID), Title: prev.Title}
	}
	if next != nil {
		data.Next = &navLink{Href: l.doc(next.ID), Title: next.Title}
	}
	return data
}

// checklistItems returns the document's checklist. Static pages start
// unchecked and the page script restores browser-local state.
func (s *Site) checklistItems(ctx context.Context, doc docstore.Document, l links) ([]checklist.Item, int) {
	if l.static() || s.state == nil {
		return checklist.Parse(doc.Content), 0
	}
	m := checklist.NewManager(s.state, s.logger)
	if err := m.Load(ctx, doc.Content); err != nil {
		s.logger.Warn("loading checklist", "doc", doc.ID, "error", err)
		return checklist.Parse(doc.Content), 0
	}
	done, _ := m.Progress()
	return m.Items(), done
}

func (s *Site) minQueryLength() int {
	if s.opts.Engine.MinQueryLength > 0 {
		return s.opts.Engine.MinQueryLength
	}
	return search.DefaultMinQueryLength
}

// RenderPage renders doc as a full page. A non-empty query marks its first
// occurrence in the content; the page script fades the mark out.
func (s *Site) RenderPage(ctx context.Context, doc docstore.Document, query string) ([]byte, error) {
	return s.renderPage(ctx, doc, s.Store(), serveLinks, query)
}

func (s *Site) renderPage(ctx context.Context, doc docstore.Document, store *docstore.Store, l links, query string) ([]byte, error) {
	p := s.pipeline
	if l.static() {
		p = s.staticPipeline
	}
	out, err := p.Render([]byte(doc.Content), doc.ID)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", doc.ID, err)
	}
	body, err := out.Hydrated()
	if err != nil {
		return nil, fmt.Errorf("hydrating %s: %w", doc.ID, err)
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, s.pageData(ctx, doc, store, l, body)); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	if query == "" {
		return buf.Bytes(), nil
	}
	return applyHighlight(buf.Bytes(), query)
}

// applyHighlight marks the first occurrence of query in the page's content
// region. Pages without a match are returned unchanged.
func applyHighlight(page []byte, query string) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered page: %w", err)
	}
	if _, ok := highlight.Apply(root, query, highlight.NewPassID()); !ok {
		return page, nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("rendering highlighted page: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPrint renders doc as a printable page with code highlighted inline.
func (s *Site) RenderPrint(doc docstore.Document) ([]byte, error) {
	return s.renderPrint(doc, serveLinks)
}

func (s *Site) renderPrint(doc docstore.Document, l links) ([]byte, error) {
	p := s.printPipeline
	if l.static() {
		p = s.staticPrint
		l.base += "../"
	}
	out, err := p.Render([]byte(doc.Content), doc.ID)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", doc.ID, err)
	}
	data := struct {
		Title     string
		SiteTitle string
		Content   template.HTML
		BasePath  string
		BackHref  string
	}{
		Title:     doc.Title,
		SiteTitle: s.opts.Title,
		Content:   template.HTML(out.HTML),
		BasePath:  l.base,
		BackHref:  l.doc(doc.ID),
	}
	var buf bytes.Buffer
	if err := s.print.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing print template: %w", err)
	}
	return buf.Bytes(), nil
}

// tableOfContents keeps the second and third level headings.
func tableOfContents(headings []markdown.Heading) []markdown.Heading {
	var toc []markdown.Heading
	for _, h := range headings {
		if h.Level == 2 || h.Level == 3 {
			toc = append(toc, h)
		}
	}
	return toc
}
