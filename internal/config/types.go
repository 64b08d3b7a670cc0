package config

import "time"

// Config is the top-level docreader configuration, corresponding to .docreader.yml.
type Config struct {
	DocsDir      string          `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir    string          `yaml:"output_dir" koanf:"output_dir"`
	SiteTitle    string          `yaml:"site_title" koanf:"site_title"`
	Include      []string        `yaml:"include" koanf:"include"`
	Exclude      []string        `yaml:"exclude" koanf:"exclude"`
	StatePath    string          `yaml:"state_path" koanf:"state_path"`
	DefaultTheme string          `yaml:"default_theme" koanf:"default_theme"`
	Server       ServerConfig    `yaml:"server" koanf:"server"`
	Highlight    HighlightConfig `yaml:"highlight" koanf:"highlight"`
	Search       SearchConfig    `yaml:"search" koanf:"search"`
}

// ServerConfig holds settings for `docreader serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}

// HighlightConfig holds the post-navigation highlight timings in milliseconds.
type HighlightConfig struct {
	SettleMS  int `yaml:"settle_ms" koanf:"settle_ms"`
	DisplayMS int `yaml:"display_ms" koanf:"display_ms"`
	FadeMS    int `yaml:"fade_ms" koanf:"fade_ms"`
}

// Settle returns the delay before the highlight is applied.
func (h HighlightConfig) Settle() time.Duration { return time.Duration(h.SettleMS) * time.Millisecond }

// Display returns how long the highlight stays before fading.
func (h HighlightConfig) Display() time.Duration {
	return time.Duration(h.DisplayMS) * time.Millisecond
}

// Fade returns the fade-out duration.
func (h HighlightConfig) Fade() time.Duration { return time.Duration(h.FadeMS) * time.Millisecond }

// SearchConfig tunes the search engine.
type SearchConfig struct {
	MinQueryLength int `yaml:"min_query_length" koanf:"min_query_length"`
	MaxResults     int `yaml:"max_results" koanf:"max_results"`
}
