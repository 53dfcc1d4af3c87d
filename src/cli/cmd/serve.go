package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/version-lsp/internal/buildinfo"
	"github.com/sofmeright/version-lsp/internal/cache"
	"github.com/sofmeright/version-lsp/internal/config"
	"github.com/sofmeright/version-lsp/internal/diagnostics"
	"github.com/sofmeright/version-lsp/internal/logging"
	"github.com/sofmeright/version-lsp/internal/lspserver"
	"github.com/sofmeright/version-lsp/internal/registry"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/resolver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stdio LSP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// zerologDiagnosticsLogger adapts zerolog.Logger to diagnostics.Logger so
// the diagnostics engine doesn't need to import zerolog for one warning
// call.
type zerologDiagnosticsLogger struct {
	log zerolog.Logger
}

func (z zerologDiagnosticsLogger) Warn(name string, err error) {
	z.log.Warn().Err(err).Str("package", name).Msg("resolver lookup failed")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	log, logFile, err := logging.New(config.LogPath(), resolvedLogLevel())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	c, err := cache.Open(config.DBPath())
	if err != nil {
		// A disabled cache degrades diagnostics to a no-op rather than
		// crashing the server.
		log.Warn().Err(err).Msg("cache unavailable, diagnostics disabled")
		c = nil
	} else {
		defer c.Close()
	}

	resolvers := buildResolvers(c)
	engine := diagnostics.NewEngine(resolvers, zerologDiagnosticsLogger{log: log})

	log.Info().Str("version", buildinfo.Version).Msg("version-lsp starting")
	server := lspserver.New(os.Stdin, os.Stdout, engine, c, log, buildinfo.Version)
	return server.Run(context.Background())
}

// buildResolvers wires one resolver per ecosystem against its registry
// client and the shared cache. When c is nil (cache unavailable), it
// returns an empty map: the diagnostics engine has no Resolver for any
// RegistryKind, so didOpen handlers skip diagnostics entirely rather than
// falling back to uncached network fetches.
func buildResolvers(c *cache.Cache) map[registrykind.Kind]diagnostics.Resolver {
	if c == nil {
		return map[registrykind.Kind]diagnostics.Resolver{}
	}

	clients := map[registrykind.Kind]registry.Registry{
		registrykind.Npm:           registry.NewNpmRegistry(""),
		registrykind.PnpmCatalog:   registry.NewNpmRegistry(""),
		registrykind.CratesIo:      registry.NewCratesIoRegistry(""),
		registrykind.GoProxy:       registry.NewGoProxyRegistry(""),
		registrykind.GitHubActions: registry.NewGitHubActionsRegistry(""),
	}

	resolvers := make(map[registrykind.Kind]diagnostics.Resolver, len(clients))
	for kind, client := range clients {
		resolvers[kind] = resolver.New(kind, c, client, config.DefaultRefreshIntervalMs)
	}
	return resolvers
}
