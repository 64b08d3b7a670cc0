package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/progress"
	"github.com/ziadkadry99/docreader/internal/site"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the documentation as a static site",
	Long: `Renders every document to an HTML file, together with print pages, the
stylesheet, the page script and a search index. The output works from any
static file host or straight from disk.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (defaults to output_dir from config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadDocuments(cfg)
	if err != nil {
		return err
	}

	outDir := cfg.OutputDir
	if buildOutput != "" {
		outDir = buildOutput
	}

	s, err := site.New(store, nil, siteOptions(cfg))
	if err != nil {
		return err
	}

	start := time.Now()
	gen := site.NewGenerator(s, outDir, progress.NewReporter())
	pages, err := gen.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	slog.Debug("static build finished", "pages", pages, "elapsed", time.Since(start))

	fmt.Printf("Static site generated: %s (%d pages)\n", outDir, pages)
	return nil
}
