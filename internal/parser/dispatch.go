package parser

import "github.com/sofmeright/version-lsp/internal/registrykind"

// ForKind returns the Parser responsible for one ecosystem. Every
// registrykind.Kind constant has an entry here -- registrykind.Detect and
// this map are kept in lockstep deliberately.
func ForKind(kind registrykind.Kind) (Parser, bool) {
	p, ok := byKind[kind]
	return p, ok
}

var byKind = map[registrykind.Kind]Parser{
	registrykind.Npm:           NpmParser{},
	registrykind.CratesIo:      CargoTomlParser{},
	registrykind.GoProxy:       GoModParser{},
	registrykind.PnpmCatalog:   PnpmWorkspaceParser{},
	registrykind.GitHubActions: GitHubActionsParser{},
}
