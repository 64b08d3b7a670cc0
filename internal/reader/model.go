// Package reader is the terminal front-end: a bubbletea program that pages
// through the documents, searches them and highlights the match it lands on.
package reader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/highlight"
	"github.com/ziadkadry99/docreader/internal/kvstore"
	"github.com/ziadkadry99/docreader/internal/markdown"
	"github.com/ziadkadry99/docreader/internal/search"
)

var clipboardWrite = clipboard.WriteAll

// resultsTop is the first screen row of the search result list.
const resultsTop = 3

// Options configures the reader.
type Options struct {
	Engine       search.Engine
	Highlight    highlight.Timing
	DefaultTheme kvstore.Theme
	Logger       *slog.Logger

	// Start is the document opened first; empty means the first document.
	Start string
	// Query is highlighted in the start document.
	Query string

	// Clock drives highlight timers. Nil uses real timers.
	Clock highlight.Scheduler
}

type clearStatusMsg struct{ seq int }

// Model is the bubbletea model of the reader.
type Model struct {
	ctx      context.Context
	store    *docstore.Store
	state    kvstore.Store
	logger   *slog.Logger
	pipeline *markdown.Pipeline
	session  *search.Session
	sched    *Scheduler
	ctrl     *highlight.Controller
	engine   search.Engine

	docs    []docstore.Document
	index   int
	root    *html.Node
	proj    Projection
	lineMap []int

	theme  kvstore.Theme
	styles Styles

	viewport     viewport.Model
	input        textinput.Model
	searching    bool
	scrollToMark bool
	ready        bool
	width        int
	height       int

	status    string
	statusSeq int
}

// New creates a reader over store. state persists the theme.
func New(ctx context.Context, store *docstore.Store, state kvstore.Store, opts Options) (*Model, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("no documents to read")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = kvstore.ThemeSystem
	}
	if opts.Highlight == (highlight.Timing{}) {
		opts.Highlight = highlight.DefaultTiming()
	}

	theme := opts.DefaultTheme
	if state != nil {
		t, err := kvstore.LoadTheme(ctx, state, opts.DefaultTheme, opts.Logger)
		if err != nil {
			opts.Logger.Warn("loading theme", "error", err)
		}
		theme = t
	}

	input := textinput.New()
	input.Placeholder = "Search documentation..."
	input.Prompt = "/ "

	m := &Model{
		ctx:      ctx,
		store:    store,
		state:    state,
		logger:   opts.Logger,
		pipeline: markdown.New(markdown.WithInlineHighlighting()),
		session:  search.NewSession(opts.Engine, store),
		sched:    NewScheduler(opts.Clock),
		engine:   opts.Engine,
		docs:     store.All(),
		theme:    theme,
		styles:   NewStyles(theme),
		viewport: viewport.New(80, 20),
		input:    input,
	}
	m.ctrl = highlight.NewController(m.sched,
		highlight.WithTiming(opts.Highlight),
		highlight.WithLogger(opts.Logger),
		highlight.WithScroll(func(*html.Node) { m.scrollToMark = true }),
	)

	start := 0
	if opts.Start != "" {
		start = m.indexOf(opts.Start)
		if start < 0 {
			return nil, fmt.Errorf("%w: %s", docstore.ErrNotFound, opts.Start)
		}
	}
	if err := m.open(start, opts.Query, ""); err != nil {
		return nil, err
	}
	return m, nil
}

// Run starts the reader in the terminal and blocks until it exits.
func Run(ctx context.Context, store *docstore.Store, state kvstore.Store, opts Options) error {
	m, err := New(ctx, store, state, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	m.sched.Attach(p.Send)
	_, err = p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Document returns the document on screen.
func (m *Model) Document() docstore.Document { return m.docs[m.index] }

// Theme returns the active theme.
func (m *Model) Theme() kvstore.Theme { return m.theme }

// Searching reports whether the search modal is open.
func (m *Model) Searching() bool { return m.searching }

// Session returns the search session behind the modal.
func (m *Model) Session() *search.Session { return m.session }

// Content returns the document text as laid out in the viewport.
func (m *Model) Content() string { return strings.Join(m.proj.Lines, "\n") }

func (m *Model) indexOf(id string) int {
	for i, d := range m.docs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// open mounts document i, scrolls to headingID when given and schedules a
// highlight of query.
func (m *Model) open(i int, query, headingID string) error {
	doc := m.docs[i]
	out, err := m.pipeline.Render([]byte(doc.Content), doc.ID)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", doc.ID, err)
	}
	root, err := html.Parse(strings.NewReader(`<div class="` + highlight.ContentClass + `">` + out.HTML + `</div>`))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", doc.ID, err)
	}

	m.index = i
	m.root = root
	m.scrollToMark = false
	m.ctrl.Navigate(root, query)
	m.refresh()

	m.viewport.GotoTop()
	if line, ok := m.proj.Headings[headingID]; ok {
		m.viewport.SetYOffset(m.lineMap[line])
	}
	return nil
}

// refresh re-projects the document and lays it out for the viewport width.
func (m *Model) refresh() {
	m.proj = Project(m.root, m.styles)

	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width, 1))
	lines := make([]string, len(m.proj.Lines))
	m.lineMap = make([]int, len(m.proj.Lines))
	n := 0
	for i, line := range m.proj.Lines {
		m.lineMap[i] = n
		lines[i] = wrap.Render(line)
		n += strings.Count(lines[i], "\n") + 1
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.scrollToMark && m.proj.MarkLine >= 0 {
		m.viewport.SetYOffset(max(m.lineMap[m.proj.MarkLine]-m.viewport.Height/3, 0))
	}
	m.scrollToMark = false
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case timerMsg:
		msg.run()
		m.refresh()
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		if m.searching {
			return m, m.handleSearchMouse(msg)
		}

	case tea.KeyMsg:
		if m.searching {
			return m, m.handleSearchKey(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.ctrl.Dismiss()
		return tea.Quit, true
	case "ctrl+k", "/":
		m.openSearch()
		return textinput.Blink, true
	case "n":
		if m.index < len(m.docs)-1 {
			m.navigate(m.index+1, "", "")
		}
		return nil, true
	case "p":
		if m.index > 0 {
			m.navigate(m.index-1, "", "")
		}
		return nil, true
	case "t":
		m.toggleTheme()
		return nil, true
	case "y":
		return m.copyCode(), true
	case "esc":
		m.ctrl.Dismiss()
		m.refresh()
		return nil, true
	}
	return nil, false
}

func (m *Model) navigate(i int, query, headingID string) {
	if err := m.open(i, query, headingID); err != nil {
		m.logger.Error("opening document", "doc", m.docs[i].ID, "error", err)
		m.status = err.Error()
	}
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = NewStyles(m.theme)
	if m.state != nil {
		if err := kvstore.SaveTheme(m.ctx, m.state, m.theme); err != nil {
			m.logger.Warn("saving theme", "error", err)
		}
	}
	m.refresh()
}

// copyCode copies the first code block at or below the top of the
// viewport, falling back to the last one above it.
func (m *Model) copyCode() tea.Cmd {
	if len(m.proj.Code) == 0 {
		return m.flash("No code block on this page")
	}
	block := m.proj.Code[len(m.proj.Code)-1]
	for _, c := range m.proj.Code {
		if m.lineMap[min(c.Line, len(m.lineMap)-1)] >= m.viewport.YOffset {
			block = c
			break
		}
	}
	if err := clipboardWrite(block.Text); err != nil {
		m.logger.Warn("copying code block", "error", err)
		return nil
	}
	return m.flash("Copied!")
}

func (m *Model) flash(status string) tea.Cmd {
	m.status = status
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(time.Duration(markdown.CopyFeedbackMillis)*time.Millisecond, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) openSearch() {
	m.searching = true
	m.session.Close()
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closeSearch() {
	m.searching = false
	m.session.Close()
	m.input.Blur()
}

func (m *Model) choose(sel search.Selection) {
	i := m.indexOf(sel.DocumentID)
	m.closeSearch()
	if i >= 0 {
		m.navigate(i, sel.Query, sel.HeadingID)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+k":
		m.closeSearch()
		return nil
	case "ctrl+c":
		return tea.Quit
	case "enter":
		if sel, ok := m.session.Select(); ok {
			m.choose(sel)
		}
		return nil
	case "up", "ctrl+p":
		m.session.MoveUp()
		return nil
	case "down", "ctrl+n":
		m.session.MoveDown()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.session.Query() {
		m.session.SetQuery(q)
	}
	return cmd
}

func (m *Model) handleSearchMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y < resultsTop {
		return nil
	}
	i := (msg.Y - resultsTop) / 2
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.session.Hover(i)
	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		if sel, ok := m.session.SelectAt(i); ok {
			m.choose(sel)
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.searching {
		return m.searchView()
	}
	return m.viewport.View() + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	doc := m.Document()
	left := fmt.Sprintf("%s · %s  %d/%d", doc.Title, doc.Section, m.index+1, len(m.docs))
	if m.status != "" {
		left += "  " + m.status
	}
	help := "ctrl+k search · n/p page · t theme · y copy · q quit"
	return m.styles.Status.Width(max(m.width, 1)).Render(left + "   " + help)
}

func (m *Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Search documentation") + "\n")
	b.WriteString(m.input.View() + "\n")

	switch m.session.State() {
	case search.StateTooShort:
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Type at least %d characters to search.", m.minQuery())))
	case search.StateNoResults:
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("No results for %q.", m.session.Query())))
	}
	b.WriteString("\n")

	limit := max((m.height-resultsTop)/2, 1)
	for i, r := range m.session.Results() {
		if i >= limit {
			break
		}
		title := m.segments(search.Highlight(r.Document.Title, m.session.Query()), lipgloss.NewStyle())
		line := title + "  " + m.styles.Muted.Render(r.Document.Section)
		if i == m.session.Selected() {
			line = m.styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		snippet := ""
		if r.Snippet != "" {
			snippet = m.segments(search.Highlight(oneLine(r.Snippet), m.session.Query()), m.styles.Muted)
		}
		b.WriteString("  " + snippet + "\n")
	}
	return m.styles.Modal.Render(b.String())
}

func (m *Model) segments(segs []search.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(m.styles.Mark.Render(s.Text))
		} else {
			b.WriteString(base.Render(s.Text))
		}
	}
	return b.String()
}

func (m *Model) minQuery() int {
	if m.engine.MinQueryLength > 0 {
		return m.engine.MinQueryLength
	}
	return search.DefaultMinQueryLength
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
