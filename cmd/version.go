package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/mcp"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of docreader",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docreader %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	mcp.Version = Version
}
