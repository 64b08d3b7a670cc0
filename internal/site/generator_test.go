package site

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/kvstore"
)

func TestSidebarHTML(t *testing.T) {
	sections := []docstore.Section{
		{Name: "General", Documents: []docstore.Summary{{ID: "index", Title: "Home"}}},
		{Name: "Guides", Documents: []docstore.Summary{
			{ID: "guides/install", Title: "Install"},
			{ID: "guides/deploy", Title: "Deploy & Run"},
		}},
	}

	got := sidebarHTML(sections, "guides/install", serveLinks)

	if !strings.Contains(got, `<li class="section expanded"><span class="section-toggle">Guides</span>`) {
		t.Errorf("active section should be expanded, got:\n%s", got)
	}
	if !strings.Contains(got, `<li class="section"><span class="section-toggle">General</span>`) {
		t.Errorf("other sections should be collapsed, got:\n%s", got)
	}
	if !strings.Contains(got, `<a href="/guides/install" class="active">Install</a>`) {
		t.Errorf("active link not marked, got:\n%s", got)
	}
	if !strings.Contains(got, "Deploy &amp; Run") {
		t.Errorf("titles should be escaped, got:\n%s", got)
	}

	static := sidebarHTML(sections, "guides/install", staticLinks("guides/install"))
	if !strings.Contains(static, `href="../index.html"`) {
		t.Errorf("static links should be relative, got:\n%s", static)
	}
}

func TestStaticLinks(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"index", "guides/install.html"},
		{"guides/install", "../guides/install.html"},
		{"a/b/c", "../../guides/install.html"},
	}
	for _, tt := range tests {
		if got := staticLinks(tt.id).doc("guides/install"); got != tt.want {
			t.Errorf("staticLinks(%q).doc = %q, want %q", tt.id, got, tt.want)
		}
	}
	if serveLinks.doc("guides/install") != "/guides/install" {
		t.Errorf("serveLinks.doc = %q", serveLinks.doc("guides/install"))
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func TestFullSiteGeneration(t *testing.T) {
	docsDir := t.TempDir()
	outputDir := t.TempDir()

	writeTestFile(t, filepath.Join(docsDir, "index.md"), "# Test Project\n\nWelcome. See the [install guide](guides/install.md#steps).\n")
	writeTestFile(t, filepath.Join(docsDir, "guides", "install.md"), "# Install\n\n## Steps\n\n```sh\n# setup.sh\nmake install\n```\n\n- [ ] Read the notes\n")

	store, err := docstore.Load(docstore.LoadOptions{Dir: docsDir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := New(store, kvstore.NewMemoryStore(), Options{Title: "test-project"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	count, err := NewGenerator(s, outputDir, nil).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	for _, f := range []string{
		"index.html",
		"guides/install.html",
		"print/index.html",
		"print/guides/install.html",
		"style.css",
		"script.js",
		"search-index.json",
	} {
		if _, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected file %s: %v", f, err)
		}
	}

	index := readOutput(t, outputDir, "index.html")
	if !strings.Contains(index, "test-project") {
		t.Error("index.html should contain the site title")
	}
	if !strings.Contains(index, `href="guides/install.html#steps"`) {
		t.Error("markdown links should point at the generated .html files")
	}
	if !strings.Contains(index, `data-static="true"`) {
		t.Error("static pages should tell the script to use local state")
	}
	if !strings.Contains(index, `<div class="markdown-content">`) {
		t.Error("page should contain the content region")
	}

	install := readOutput(t, outputDir, "guides/install.html")
	if !strings.Contains(install, `href="../style.css"`) {
		t.Error("nested page should reference ../style.css")
	}
	if !strings.Contains(install, `class="copy-button"`) {
		t.Error("code blocks should be hydrated with a copy button")
	}
	if !strings.Contains(install, `<span class="code-filename">setup.sh</span>`) {
		t.Error("code block header should show the sniffed filename")
	}
	if !strings.Contains(install, `href="../index.html"`) {
		t.Error("nested page should link back relatively")
	}

	printed := readOutput(t, outputDir, "print/guides/install.html")
	if !strings.Contains(printed, `href="../../style.css"`) {
		t.Error("print page should reference the stylesheet two levels up")
	}
	if strings.Contains(printed, "copy-button") {
		t.Error("print page should highlight code inline")
	}

	var entries []SearchEntry
	if err := json.Unmarshal([]byte(readOutput(t, outputDir, "search-index.json")), &entries); err != nil {
		t.Fatalf("parsing search-index.json: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "index" || entries[1].Section != "Guides" {
		t.Errorf("search entries = %+v", entries)
	}
}

func TestGenerateRedirectsWithoutIndex(t *testing.T) {
	store, err := docstore.New(docstore.Document{ID: "intro", Title: "Intro", Section: "General", Content: "# Intro\n"})
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(store, nil, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	outputDir := t.TempDir()
	if _, err := NewGenerator(s, outputDir, nil).Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	index := readOutput(t, outputDir, "index.html")
	if !strings.Contains(index, `url=intro.html`) {
		t.Errorf("index.html should redirect to the first document, got:\n%s", index)
	}
}

func TestGenerateNoDocuments(t *testing.T) {
	store, err := docstore.New()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(store, nil, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := NewGenerator(s, t.TempDir(), nil).Generate(context.Background()); err == nil {
		t.Error("Generate should fail without documents")
	}
}
