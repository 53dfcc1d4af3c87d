package parser

import (
	"bytes"

	"golang.org/x/mod/modfile"

	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// GoModParser extracts require directives from a go.mod document.
// golang.org/x/mod/modfile already builds an exact AST with byte
// positions, so unlike the JSON/TOML parsers this one needs no
// hand-rolled scanner -- this is the module whose freshness checker this
// system must not imitate, since it scraped go.mod with line-prefix
// string matching instead of using this library.
type GoModParser struct{}

// Parse implements Parser.
func (GoModParser) Parse(content []byte) ([]PackageInfo, error) {
	file, err := modfile.Parse("go.mod", content, nil)
	if err != nil {
		return nil, err
	}

	var out []PackageInfo
	for _, req := range file.Require {
		if req.Syntax == nil {
			continue
		}
		start, end := req.Syntax.Start.Byte, req.Syntax.End.Byte
		if start < 0 || end > len(content) || start >= end {
			continue
		}
		lineBytes := content[start:end]
		idx := bytes.Index(lineBytes, []byte(req.Mod.Version))
		if idx < 0 {
			continue
		}
		versionStart := start + idx
		versionEnd := versionStart + len(req.Mod.Version)
		line, col := positionAt(content, versionStart)

		out = append(out, PackageInfo{
			Name:        req.Mod.Path,
			VersionSpec: req.Mod.Version,
			Registry:    registrykind.GoProxy,
			Span: Span{
				StartByte: versionStart,
				EndByte:   versionEnd,
				Line:      line,
				Column:    col,
			},
		})
	}
	return out, nil
}
