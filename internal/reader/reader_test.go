package reader

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/highlight"
	"github.com/ziadkadry99/docreader/internal/kvstore"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.ReplaceAllString(l, "")
	}
	return out
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) highlight.Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			t.f()
		}
	}
}

func TestProject(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<div class="markdown-content">` +
		`<h1 id="intro">Intro</h1>` +
		`<p>Hello <mark class="search-highlight" data-search-highlight="p1">world</mark></p>` +
		`<ul><li>one</li><li class="task-item"><input type="checkbox" checked> done</li></ul>` +
		"<pre><code>line1\nline2\n</code></pre></div>"))
	if err != nil {
		t.Fatal(err)
	}

	proj := Project(root, NewStyles(kvstore.ThemeLight))
	want := []string{"# Intro", "", "Hello world", "", "• one", "[x] done", "", "    line1", "    line2"}
	got := plain(proj.Lines)
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if proj.MarkLine != 2 {
		t.Errorf("MarkLine = %d, want 2", proj.MarkLine)
	}
	if proj.Headings["intro"] != 0 {
		t.Errorf("Headings = %v", proj.Headings)
	}
	if len(proj.Code) != 1 || proj.Code[0].Line != 7 || proj.Code[0].Text != "line1\nline2\n" {
		t.Errorf("Code = %+v", proj.Code)
	}
}

func TestProjectWithoutMark(t *testing.T) {
	root, _ := html.Parse(strings.NewReader(`<div class="markdown-content"><p>text</p></div>`))
	if proj := Project(root, NewStyles(kvstore.ThemeDark)); proj.MarkLine != -1 {
		t.Errorf("MarkLine = %d, want -1", proj.MarkLine)
	}
}

type harness struct {
	t     *testing.T
	m     *Model
	clock *fakeClock
	state kvstore.Store
	inbox []tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := docstore.New(
		docstore.Document{ID: "intro", Title: "Introduction", Section: "General",
			Content: "# Introduction\n\nWelcome to the guide.\n"},
		docstore.Document{ID: "install", Title: "Install", Section: "Guides",
			Content: "# Install\n\n## Steps\n\nRun the setup script.\n\n```sh\nmake all\n```\n"},
		docstore.Document{ID: "faq", Title: "FAQ", Section: "Guides",
			Content: "# FAQ\n\nHow do I install it? See the install page.\n"},
	)
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{t: t, clock: &fakeClock{}, state: kvstore.NewMemoryStore()}
	h.m, err = New(context.Background(), store, h.state, Options{Clock: h.clock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.m.sched.Attach(func(msg tea.Msg) { h.inbox = append(h.inbox, msg) })
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

// advance moves the clock and delivers the timer messages it produced.
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	for len(h.inbox) > 0 {
		msg := h.inbox[0]
		h.inbox = h.inbox[1:]
		h.send(msg)
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPaging(t *testing.T) {
	h := newHarness(t)

	if h.m.Document().ID != "intro" {
		t.Fatalf("start document = %q, want intro", h.m.Document().ID)
	}
	h.send(key("n"))
	if h.m.Document().ID != "install" {
		t.Errorf("after n = %q, want install", h.m.Document().ID)
	}
	if !strings.Contains(h.m.Content(), "Run the setup script.") {
		t.Errorf("content not projected:\n%s", h.m.Content())
	}
	h.send(key("p"))
	h.send(key("p"))
	if h.m.Document().ID != "intro" {
		t.Errorf("p should stop at the first document, got %q", h.m.Document().ID)
	}
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t)
	if h.m.Theme() != kvstore.ThemeSystem {
		t.Fatalf("initial theme = %q, want system", h.m.Theme())
	}
	h.send(key("t"))
	if h.m.Theme() != kvstore.ThemeDark {
		t.Errorf("theme = %q, want dark", h.m.Theme())
	}
	stored, err := kvstore.LoadTheme(context.Background(), h.state, kvstore.ThemeSystem, nil)
	if err != nil || stored != kvstore.ThemeDark {
		t.Errorf("stored theme = %q, %v; want dark", stored, err)
	}
	h.send(key("t"))
	if h.m.Theme() != kvstore.ThemeLight {
		t.Errorf("theme = %q, want light", h.m.Theme())
	}
}

func TestSearchNavigatesAndHighlights(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
	if !h.m.Searching() {
		t.Fatal("ctrl+k should open search")
	}
	h.send(key("install"))
	if h.m.Session().State().String() != "results" {
		t.Fatalf("state = %v, want results", h.m.Session().State())
	}
	results := h.m.Session().Results()
	if len(results) != 2 || results[0].Document.ID != "install" {
		t.Fatalf("results = %+v", results)
	}

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	if h.m.Session().Selected() != 1 {
		t.Errorf("selection = %d, want clamped at 1", h.m.Session().Selected())
	}
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.m.Searching() {
		t.Error("enter should close search")
	}
	if h.m.Document().ID != "faq" {
		t.Fatalf("document = %q, want faq", h.m.Document().ID)
	}
	if h.m.proj.MarkLine != -1 {
		t.Error("highlight should wait for the settle delay")
	}

	h.advance(highlight.DefaultSettle)
	if h.m.proj.MarkLine != 2 {
		t.Fatalf("MarkLine = %d, want 2", h.m.proj.MarkLine)
	}
	if _, ok := h.m.ctrl.Active(); !ok {
		t.Error("controller should report an active highlight")
	}

	h.advance(highlight.DefaultDisplay)
	if highlight.Count(h.m.root) != 1 {
		t.Error("highlight should still be present while fading")
	}
	h.advance(highlight.DefaultFade)
	if highlight.Count(h.m.root) != 0 || h.m.proj.MarkLine != -1 {
		t.Error("highlight should be removed after the fade")
	}
}

func TestSearchEscapeDiscardsQuery(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
	h.send(key("faq"))
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	if h.m.Searching() {
		t.Error("escape should close search")
	}
	if h.m.Session().Query() != "" || len(h.m.Session().Results()) != 0 {
		t.Error("closing should discard the query and results")
	}
	if h.m.Document().ID != "intro" {
		t.Error("closing should not navigate")
	}
}

func TestSearchMouseHover(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
	h.send(key("install"))

	h.send(tea.MouseMsg{Y: resultsTop + 2, Action: tea.MouseActionMotion})
	if h.m.Session().Selected() != 1 {
		t.Errorf("hover selection = %d, want 1", h.m.Session().Selected())
	}
	h.send(tea.MouseMsg{Y: resultsTop + 20, Action: tea.MouseActionMotion})
	if h.m.Session().Selected() != 1 {
		t.Error("hovering past the list should keep the selection")
	}
}

func TestRapidNavigationKeepsOneHighlight(t *testing.T) {
	h := newHarness(t)
	for _, q := range []string{"install", "page"} {
		h.send(tea.KeyMsg{Type: tea.KeyCtrlK})
		h.send(key(q))
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	}
	h.advance(highlight.DefaultSettle)
	if n := highlight.Count(h.m.root); n != 1 {
		t.Errorf("highlights = %d, want 1", n)
	}
}

func TestCopyCode(t *testing.T) {
	h := newHarness(t)
	h.send(key("n"))

	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()
	var copied string
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}

	h.send(key("y"))
	if copied != "make all\n" {
		t.Errorf("copied = %q, want the code block", copied)
	}
	if h.m.status != "Copied!" {
		t.Errorf("status = %q, want Copied!", h.m.status)
	}

	h.m.status = ""
	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	h.send(key("y"))
	if h.m.status != "" {
		t.Errorf("a failed copy should show no feedback, got %q", h.m.status)
	}
}

func TestNewErrors(t *testing.T) {
	empty, _ := docstore.New()
	if _, err := New(context.Background(), empty, nil, Options{}); err == nil {
		t.Error("expected an error for an empty store")
	}
	store, _ := docstore.New(docstore.Document{ID: "a", Title: "A", Content: "# A\n"})
	if _, err := New(context.Background(), store, nil, Options{Start: "missing"}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
