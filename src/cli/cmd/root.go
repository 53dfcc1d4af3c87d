package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/version-lsp/internal/config"
)

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:           "version-lsp",
	Short:         "Dependency version LSP backend",
	Long:          "version-lsp — inspects dependency manifests in an editor buffer and publishes diagnostics for outdated, nonexistent, or newer-than-known package versions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error); defaults to VERSION_LSP_LOG or info")
}

func resolvedLogLevel() string {
	if logLevelFlag != "" {
		return logLevelFlag
	}
	return config.LogLevel()
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
