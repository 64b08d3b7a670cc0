package docstore

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docreader/internal/markdown"
)

// DefaultSection labels documents that sit at the root of the docs tree.
const DefaultSection = "General"

// LoadOptions controls which files Load reads.
type LoadOptions struct {
	Dir     string
	Include []string // doublestar patterns; empty means every .md file
	Exclude []string
}

// frontMatter is the optional YAML header of a document.
type frontMatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Section string `yaml:"section"`
	Order   *int   `yaml:"order"`

	// Checklist shows the document's task items as a tracked checklist.
	Checklist bool `yaml:"checklist"`
}

// Load reads every markdown file under opts.Dir into a Store. Sections keep
// the order of their lowest-ordered document; documents are sorted by their
// front matter order, then path. index.md, when present, comes first.
func Load(opts LoadOptions) (*Store, error) {
	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving docs dir: %w", err)
	}

	var docs []Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, opts.Include, true) || matchesAny(rel, opts.Exclude, false) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		doc, err := ParseDocument(rel, raw)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs dir: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", opts.Dir)
	}

	sortDocuments(docs)
	return New(docs...)
}

// ParseDocument builds a Document from a file's relative path and bytes.
func ParseDocument(relPath string, raw []byte) (Document, error) {
	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		return Document{}, fmt.Errorf("parsing front matter of %s: %w", relPath, err)
	}
	content := string(body)

	doc := Document{
		ID:        fm.ID,
		Title:     fm.Title,
		Section:   fm.Section,
		Path:      relPath,
		Headings:  markdown.ScanHeadings(content),
		Content:   content,
		Checklist: fm.Checklist,
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(relPath, ".md")
	}
	if doc.Title == "" {
		doc.Title = extractTitle(content, relPath)
	}
	if doc.Section == "" {
		doc.Section = sectionFromPath(relPath)
	}
	if fm.Order != nil {
		doc.Order = *fm.Order
	}
	return doc, nil
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(raw []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	normalized := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return fm, raw, nil
	}
	rest := normalized[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end == -1 {
		return fm, raw, nil
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, nil, err
	}
	body := rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return fm, body, nil
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}

// sectionFromPath derives a section label from the first directory.
func sectionFromPath(relPath string) string {
	dir, _, found := strings.Cut(relPath, "/")
	if !found {
		return DefaultSection
	}
	return formatDirName(dir)
}

// formatDirName converts a directory name to a human-readable display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func sortDocuments(docs []Document) {
	less := func(a, b Document) bool {
		if (a.Path == "index.md") != (b.Path == "index.md") {
			return a.Path == "index.md"
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Path < b.Path
	}
	sort.SliceStable(docs, func(i, j int) bool { return less(docs[i], docs[j]) })

	// Group by section, keeping each section at the position of its first
	// (lowest-sorted) document.
	rank := make(map[string]int)
	for i, d := range docs {
		if _, ok := rank[d.Section]; !ok {
			rank[d.Section] = i
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return rank[docs[i].Section] < rank[docs[j].Section]
	})
}

// matchesAny reports whether relPath matches one of patterns. An empty
// pattern list yields emptyResult.
func matchesAny(relPath string, patterns []string, emptyResult bool) bool {
	if len(patterns) == 0 {
		return emptyResult
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, filepath.Base(relPath)); ok && !strings.Contains(p, "/") {
			return true
		}
	}
	return false
}
