package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DocsDir != "docs" {
		t.Errorf("expected default docs_dir %q, got %q", "docs", cfg.DocsDir)
	}
	if cfg.DefaultTheme != "system" {
		t.Errorf("expected default theme system, got %q", cfg.DefaultTheme)
	}
	if cfg.Search.MinQueryLength != 2 {
		t.Errorf("expected default min_query_length 2, got %d", cfg.Search.MinQueryLength)
	}
	h := cfg.Highlight
	if h.Settle() != 100*time.Millisecond || h.Display() != 5*time.Second || h.Fade() != 500*time.Millisecond {
		t.Errorf("unexpected highlight timings %v %v %v", h.Settle(), h.Display(), h.Fade())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docreader.yml")

	original := DefaultConfig()
	original.DocsDir = "content"
	original.SiteTitle = "Handbook"
	original.Include = []string{"guides/**/*.md", "*.md"}
	original.Server.Port = 9000
	original.Highlight.DisplayMS = 3000

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.DocsDir != original.DocsDir {
		t.Errorf("docs_dir: got %q, want %q", loaded.DocsDir, original.DocsDir)
	}
	if loaded.SiteTitle != original.SiteTitle {
		t.Errorf("site_title: got %q, want %q", loaded.SiteTitle, original.SiteTitle)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d, want 9000", loaded.Server.Port)
	}
	if loaded.Highlight.DisplayMS != 3000 {
		t.Errorf("highlight.display_ms: got %d, want 3000", loaded.Highlight.DisplayMS)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Errorf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("DOCREADER_SITE_TITLE", "From Env")
	t.Setenv("DOCREADER_SERVER__PORT", "7070")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SiteTitle != "From Env" {
		t.Errorf("env override failed: got %q, want %q", loaded.SiteTitle, "From Env")
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("nested env override failed: got %d, want 7070", loaded.Server.Port)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DOCREADER_DOCS_DIR":                 "docs_dir",
		"DOCREADER_SERVER__PORT":             "server.port",
		"DOCREADER_HIGHLIGHT__DISPLAY_MS":    "highlight.display_ms",
		"DOCREADER_SEARCH__MIN_QUERY_LENGTH": "search.min_query_length",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty docs_dir", func(c *Config) { c.DocsDir = "" }},
		{"empty output_dir", func(c *Config) { c.OutputDir = "" }},
		{"unknown theme", func(c *Config) { c.DefaultTheme = "sepia" }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative settle", func(c *Config) { c.Highlight.SettleMS = -1 }},
		{"negative fade", func(c *Config) { c.Highlight.FadeMS = -1 }},
		{"min query zero", func(c *Config) { c.Search.MinQueryLength = 0 }},
		{"negative max results", func(c *Config) { c.Search.MaxResults = -1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, ok := range []string{"1", "8080", "65535"} {
		if err := validatePort(ok); err != nil {
			t.Errorf("validatePort(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "0", "abc", "65536"} {
		if err := validatePort(bad); err == nil {
			t.Errorf("validatePort(%q) should fail", bad)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
