package config

// DefaultExcludes are glob patterns skipped when loading documents.
var DefaultExcludes = []string{
	"node_modules/**",
	"vendor/**",
	"**/_*.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:      "docs",
		OutputDir:    "site",
		SiteTitle:    "Documentation",
		Include:      []string{"**/*.md"},
		Exclude:      DefaultExcludes,
		StatePath:    ".docreader/state.db",
		DefaultTheme: "system",
		Server: ServerConfig{
			Port:  8080,
			Watch: true,
		},
		Highlight: HighlightConfig{
			SettleMS:  100,
			DisplayMS: 5000,
			FadeMS:    500,
		},
		Search: SearchConfig{
			MinQueryLength: 2,
		},
	}
}
