package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server over stdio exposing the documentation to AI tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := loadDocuments(cfg)
		if err != nil {
			return err
		}
		state, closeState, err := openState(cfg, false)
		if err != nil {
			return err
		}
		defer closeState()

		slog.Info("starting MCP server", "documents", store.Len())
		return mcp.NewServer(store, state, searchEngine(cfg), slog.Default()).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
