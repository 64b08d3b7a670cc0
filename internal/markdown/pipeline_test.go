package markdown

import (
	"strings"
	"testing"
)

func render(t *testing.T, p *Pipeline, src, docID string) *Output {
	t.Helper()
	out, err := p.Render([]byte(src), docID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestRenderHeadingIDs(t *testing.T) {
	src := "# Getting Started\n\n## Install `docreader`\n\n## Getting Started\n"
	out := render(t, New(), src, "guide")

	if !strings.Contains(out.HTML, `<h1 id="getting-started">`) {
		t.Errorf("missing h1 id, got:\n%s", out.HTML)
	}
	if !strings.Contains(out.HTML, `<h2 id="install-docreader">`) {
		t.Errorf("missing slugged h2 id, got:\n%s", out.HTML)
	}
	// Duplicate headings are not disambiguated.
	if strings.Count(out.HTML, `id="getting-started"`) != 2 {
		t.Errorf("duplicate heading ids should be kept as-is, got:\n%s", out.HTML)
	}

	if len(out.Headings) != 3 {
		t.Fatalf("headings = %d, want 3", len(out.Headings))
	}
	if out.Headings[1].Text != "Install docreader" {
		t.Errorf("heading text = %q, want %q", out.Headings[1].Text, "Install docreader")
	}
	if out.Headings[1].Level != 2 {
		t.Errorf("heading level = %d, want 2", out.Headings[1].Level)
	}
}

func TestRenderExtractsCodeBlocks(t *testing.T) {
	src := "Intro\n\n```js\n// app.js\nconsole.log(1)\n```\n\n```\nplain\n```\n"
	out := render(t, New(), src, "doc")

	if len(out.CodeBlocks) != 2 {
		t.Fatalf("code blocks = %d, want 2", len(out.CodeBlocks))
	}
	first := out.CodeBlocks[0]
	if first.Language != "javascript" {
		t.Errorf("language = %q, want javascript", first.Language)
	}
	if first.Filename != "app.js" {
		t.Errorf("filename = %q, want app.js", first.Filename)
	}
	if first.Code != "// app.js\nconsole.log(1)\n" {
		t.Errorf("code = %q", first.Code)
	}
	second := out.CodeBlocks[1]
	if second.Language != "text" || second.Filename != "code" {
		t.Errorf("second block = %+v, want text/code defaults", second)
	}

	if strings.Contains(out.HTML, "console.log") {
		t.Error("code should be lifted out of the HTML flow")
	}
	if strings.Count(out.HTML, PlaceholderClass) != 2 {
		t.Errorf("expected two placeholders, got:\n%s", out.HTML)
	}

	hydrated, err := out.Hydrated()
	if err != nil {
		t.Fatalf("Hydrated: %v", err)
	}
	if strings.Contains(hydrated, PlaceholderClass) {
		t.Error("hydrated HTML still contains placeholders")
	}
	if !strings.Contains(hydrated, `class="copy-button"`) {
		t.Error("hydrated HTML should contain a copy button")
	}
	if !strings.Contains(hydrated, `<span class="code-filename">app.js</span>`) {
		t.Error("hydrated HTML should show the sniffed filename")
	}
}

func TestRenderInlineHighlighting(t *testing.T) {
	src := "```go\npackage main\n```\n"
	out := render(t, New(WithInlineHighlighting()), src, "doc")

	if len(out.CodeBlocks) != 0 {
		t.Errorf("inline mode should not extract code blocks, got %d", len(out.CodeBlocks))
	}
	if strings.Contains(out.HTML, PlaceholderClass) {
		t.Error("inline mode should not emit placeholders")
	}
	if !strings.Contains(out.HTML, "package") {
		t.Errorf("inline mode should keep the code, got:\n%s", out.HTML)
	}
}

func TestRenderLinks(t *testing.T) {
	src := "[jump](#setup) [site](https://example.com) [guide](guide.md#intro) <https://auto.example.com>\n"
	out := render(t, New(), src, "doc")

	if !strings.Contains(out.HTML, `<a href="#setup" class="anchor-link" data-smooth-scroll="true">`) {
		t.Errorf("anchor link not marked, got:\n%s", out.HTML)
	}
	if !strings.Contains(out.HTML, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">`) {
		t.Errorf("external link not marked, got:\n%s", out.HTML)
	}
	if !strings.Contains(out.HTML, `href="guide#intro"`) {
		t.Errorf(".md link not rewritten, got:\n%s", out.HTML)
	}
	if !strings.Contains(out.HTML, `href="https://auto.example.com" target="_blank"`) {
		t.Errorf("autolink not marked, got:\n%s", out.HTML)
	}

	static := render(t, New(WithLinkSuffix(".html")), src, "doc")
	if !strings.Contains(static.HTML, `href="guide.html#intro"`) {
		t.Errorf(".md link not rewritten with suffix, got:\n%s", static.HTML)
	}
	if !strings.Contains(static.HTML, `href="#setup"`) {
		t.Errorf("anchor link should keep no suffix, got:\n%s", static.HTML)
	}
}

func TestRenderTaskItems(t *testing.T) {
	src := "- [ ] Write docs\n- [x] Ship it\n- plain item\n"
	out := render(t, New(), src, "release")

	if len(out.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(out.Tasks))
	}
	if out.Tasks[0].Text != "Write docs" || out.Tasks[0].Checked {
		t.Errorf("first task = %+v", out.Tasks[0])
	}
	if !out.Tasks[1].Checked {
		t.Error("second task should be checked in source")
	}
	want := TaskCheckID("Write docs", "release")
	if out.Tasks[0].ID != want {
		t.Errorf("task id = %q, want %q", out.Tasks[0].ID, want)
	}
	if !strings.Contains(out.HTML, `data-check-id="`+want+`"`) {
		t.Errorf("checkbox missing check id, got:\n%s", out.HTML)
	}
	if strings.Count(out.HTML, `<li class="task-item">`) != 2 {
		t.Errorf("task rows should carry the task-item class, got:\n%s", out.HTML)
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := "# T\n\n- [ ] a\n\n```sh\necho hi\n```\n"
	p := New()
	a := render(t, p, src, "d")
	b := render(t, p, src, "d")
	if a.HTML != b.HTML {
		t.Error("rendering the same input twice should give identical HTML")
	}
}

func TestTaskCheckID(t *testing.T) {
	if TaskCheckID("a", "") != "2p" {
		t.Errorf("TaskCheckID(a) = %q, want 2p (97 in base 36)", TaskCheckID("a", ""))
	}
	if TaskCheckID("Write docs", "x") == TaskCheckID("Write docs", "y") {
		t.Error("ids should differ between documents")
	}
	if TaskCheckID("same", "doc") != TaskCheckID("same", "doc") {
		t.Error("ids should be stable")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"js", "javascript"},
		{"ts", "typescript"},
		{"sh", "bash"},
		{"shell", "bash"},
		{"yml", "yaml"},
		{"md", "markdown"},
		{"Go", "go"},
		{"python {linenos=true}", "python"},
		{"", "text"},
	}
	for _, tt := range tests {
		if got := NormalizeLanguage(tt.input); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSniffFilename(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"// main.go\npackage main", "main.go"},
		{"# setup.py\nimport os", "setup.py"},
		{"/* styles.css */\nbody {}", "styles.css"},
		{"#!/bin/bash\necho", "code"},
		{"fmt.Println()\n// late.go", "code"},
		{"", "code"},
	}
	for _, tt := range tests {
		if got := SniffFilename(tt.code); got != tt.want {
			t.Errorf("SniffFilename(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
