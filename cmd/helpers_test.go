package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/docreader/internal/config"
	"github.com/ziadkadry99/docreader/internal/kvstore"
)

func TestSiteOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SiteTitle = "Handbook"
	cfg.DefaultTheme = "dark"
	cfg.Highlight.DisplayMS = 1500
	cfg.Search.MaxResults = 7

	opts := siteOptions(cfg)
	if opts.Title != "Handbook" {
		t.Errorf("Title = %q", opts.Title)
	}
	if opts.DefaultTheme != kvstore.ThemeDark {
		t.Errorf("DefaultTheme = %q, want dark", opts.DefaultTheme)
	}
	if opts.Highlight.Display != 1500*time.Millisecond {
		t.Errorf("Display = %v, want 1.5s", opts.Highlight.Display)
	}
	if opts.Highlight.Settle != 100*time.Millisecond {
		t.Errorf("Settle = %v, want 100ms", opts.Highlight.Settle)
	}
	if opts.Engine.MaxResults != 7 || opts.Engine.MinQueryLength != 2 {
		t.Errorf("Engine = %+v", opts.Engine)
	}
}

func TestDefaultThemeFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultTheme = "sepia"
	if got := defaultTheme(cfg); got != kvstore.ThemeSystem {
		t.Errorf("defaultTheme = %q, want system", got)
	}
}

func TestOpenState(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StatePath = filepath.Join(t.TempDir(), "nested", "state.db")

	state, closeState, err := openState(cfg, false)
	if err != nil {
		t.Fatalf("openState: %v", err)
	}
	if err := state.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := closeState(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(cfg.StatePath); err != nil {
		t.Errorf("state database not created: %v", err)
	}

	mem, closeMem, err := openState(cfg, true)
	if err != nil {
		t.Fatalf("openState ephemeral: %v", err)
	}
	defer closeMem()
	if _, ok := mem.(*kvstore.MemoryStore); !ok {
		t.Errorf("ephemeral state = %T, want *kvstore.MemoryStore", mem)
	}
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Home\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.DocsDir = dir

	store, err := loadDocuments(cfg)
	if err != nil {
		t.Fatalf("loadDocuments: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}

	cfg.DocsDir = t.TempDir()
	if _, err := loadDocuments(cfg); err == nil {
		t.Error("expected an error for an empty docs dir")
	}
}

func TestLoadSampleDocuments(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DocsDir = filepath.Join("..", "testdata", "docs")

	store, err := loadDocuments(cfg)
	if err != nil {
		t.Fatalf("loadDocuments: %v", err)
	}
	want := []string{"index", "getting-started/install", "getting-started/configure", "operations/release"}
	docs := store.All()
	if len(docs) != len(want) {
		t.Fatalf("documents = %d, want %d", len(docs), len(want))
	}
	for i, id := range want {
		if docs[i].ID != id {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i].ID, id)
		}
	}

	release, err := store.Get("operations/release")
	if err != nil {
		t.Fatal(err)
	}
	if !release.Checklist || release.Title != "Release Checklist" {
		t.Errorf("release = %+v", release)
	}

	results := searchEngine(cfg).Search(store.All(), "authentication")
	if len(results) != 1 || results[0].Document.ID != "getting-started/configure" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Route() != "/getting-started/configure#authentication" {
		t.Errorf("route = %q", results[0].Route())
	}
}
