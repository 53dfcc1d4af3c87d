package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/version-lsp/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(buildinfo.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
