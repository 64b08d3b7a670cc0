package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/docreader/internal/config"
	"github.com/ziadkadry99/docreader/internal/db"
	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/highlight"
	"github.com/ziadkadry99/docreader/internal/kvstore"
	"github.com/ziadkadry99/docreader/internal/search"
	"github.com/ziadkadry99/docreader/internal/site"
)

// loadConfig reads and validates the config file named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun 'docreader init' to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadDocuments(cfg *config.Config) (*docstore.Store, error) {
	store, err := docstore.Load(docstore.LoadOptions{
		Dir:     cfg.DocsDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	return store, nil
}

// openState opens the persisted reader state. Ephemeral state lives in
// memory and is lost on exit.
func openState(cfg *config.Config, ephemeral bool) (kvstore.Store, func() error, error) {
	if ephemeral {
		return kvstore.NewMemoryStore(), func() error { return nil }, nil
	}
	database, err := db.Open(cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state database: %w", err)
	}
	return kvstore.NewSQLiteStore(database), database.Close, nil
}

func searchEngine(cfg *config.Config) search.Engine {
	return search.Engine{
		MinQueryLength: cfg.Search.MinQueryLength,
		MaxResults:     cfg.Search.MaxResults,
	}
}

func highlightTiming(cfg *config.Config) highlight.Timing {
	return highlight.Timing{
		Settle:  cfg.Highlight.Settle(),
		Display: cfg.Highlight.Display(),
		Fade:    cfg.Highlight.Fade(),
	}
}

func defaultTheme(cfg *config.Config) kvstore.Theme {
	theme, err := kvstore.ParseTheme(cfg.DefaultTheme)
	if err != nil {
		return kvstore.ThemeSystem
	}
	return theme
}

func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		Title:        cfg.SiteTitle,
		DefaultTheme: defaultTheme(cfg),
		Highlight:    highlightTiming(cfg),
		Engine:       searchEngine(cfg),
		Logger:       slog.Default(),
	}
}
