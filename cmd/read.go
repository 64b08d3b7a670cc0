package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/reader"
)

var (
	readQuery     string
	readEphemeral bool
)

var readCmd = &cobra.Command{
	Use:   "read [doc-id]",
	Short: "Read the documentation in the terminal",
	Long: `Opens an interactive terminal reader. Press ctrl+k or / to search, n and p
to page through documents, t to switch theme, y to copy the visible code
block and q to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadDocuments(cfg)
		if err != nil {
			return err
		}
		state, closeState, err := openState(cfg, readEphemeral)
		if err != nil {
			return err
		}
		defer closeState()

		// Log lines on stderr would tear the alternate screen.
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if verbose {
			logger = slog.Default()
		}
		opts := reader.Options{
			Engine:       searchEngine(cfg),
			Highlight:    highlightTiming(cfg),
			DefaultTheme: defaultTheme(cfg),
			Logger:       logger,
			Query:        readQuery,
		}
		if len(args) == 1 {
			opts.Start = args[0]
		}
		return reader.Run(cmd.Context(), store, state, opts)
	},
}

func init() {
	readCmd.Flags().StringVarP(&readQuery, "query", "q", "", "highlight the first occurrence of this text")
	readCmd.Flags().BoolVar(&readEphemeral, "ephemeral", false, "keep reader state in memory only")
	rootCmd.AddCommand(readCmd)
}
