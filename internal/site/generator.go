package site

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/docreader/internal/progress"
)

// Generator writes the site as static files.
type Generator struct {
	Site      *Site
	OutputDir string
	Reporter  progress.Reporter
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(s *Site, outputDir string, reporter progress.Reporter) *Generator {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Generator{Site: s, OutputDir: outputDir, Reporter: reporter}
}

// Generate builds every page, its printable variant, the assets and the
// search index. Returns the number of documents rendered.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	store := g.Site.Store()
	docs := store.All()
	if len(docs) == 0 {
		return 0, fmt.Errorf("no documents to render")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	if err := WriteSearchIndex(g.Site.searchIndex(), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(g.Site.CSS()), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	g.Reporter.Start(len(docs))
	defer g.Reporter.Finish()

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		l := staticLinks(doc.ID)

		page, err := g.Site.renderPage(ctx, doc, store, l, "")
		if err != nil {
			return i, err
		}
		if err := writePage(g.OutputDir, doc.ID+".html", page); err != nil {
			return i, err
		}

		printPage, err := g.Site.renderPrint(doc, l)
		if err != nil {
			return i, err
		}
		if err := writePage(g.OutputDir, filepath.Join("print", doc.ID+".html"), printPage); err != nil {
			return i, err
		}
		g.Reporter.Update(i+1, doc.ID)
	}

	// index.html always exists so the output directory can be served as is.
	if _, err := store.Get("index"); err != nil {
		first, _ := store.First()
		redirect := fmt.Sprintf(redirectTemplate, html.EscapeString(first.ID+".html"))
		if err := writePage(g.OutputDir, "index.html", []byte(redirect)); err != nil {
			return len(docs), err
		}
	}

	return len(docs), nil
}

const redirectTemplate = `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><meta http-equiv="refresh" content="0; url=%[1]s"></head>
<body><a href="%[1]s">Continue</a></body></html>
`

func writePage(outputDir, relPath string, data []byte) error {
	outPath := filepath.Join(outputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
