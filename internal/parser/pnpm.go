package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// PnpmWorkspaceParser extracts dependency records from a pnpm-workspace.yaml
// document's catalog(s).
type PnpmWorkspaceParser struct{}

// Parse implements Parser.
func (PnpmWorkspaceParser) Parse(content []byte) ([]PackageInfo, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("pnpm-workspace.yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil
	}

	var out []PackageInfo
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "catalog":
			out = append(out, catalogEntries(content, value)...)
		case "catalogs":
			if value.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				out = append(out, catalogEntries(content, value.Content[j+1])...)
			}
		}
	}
	return out, nil
}

// catalogEntries reads one flat `name: version` mapping node into records.
func catalogEntries(content []byte, mapping *yaml.Node) []PackageInfo {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	var out []PackageInfo
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		nameNode, versionNode := mapping.Content[i], mapping.Content[i+1]
		if versionNode.Kind != yaml.ScalarNode {
			continue
		}
		column := versionNode.Column
		if versionNode.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			column++ // yaml.v3 points at the opening quote; the span starts after it.
		}
		out = append(out, PackageInfo{
			Name:        nameNode.Value,
			VersionSpec: versionNode.Value,
			Registry:    registrykind.PnpmCatalog,
			Span:        yamlSpan(content, versionNode.Line, column, versionNode.Value),
		})
	}
	return out
}
