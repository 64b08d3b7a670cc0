package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docreader/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docreader configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docreader for your documentation and generates a .docreader.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Println("Next: run 'docreader serve' to browse your docs.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
