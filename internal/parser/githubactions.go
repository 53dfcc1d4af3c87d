package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// GitHubActionsParser extracts `uses:` action references from a workflow
// YAML document.
type GitHubActionsParser struct{}

// Parse implements Parser.
func (GitHubActionsParser) Parse(content []byte) ([]PackageInfo, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("workflow yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil
	}

	jobs := mappingValueNode(root, "jobs")
	if jobs == nil || jobs.Kind != yaml.MappingNode {
		return nil, nil
	}

	var out []PackageInfo
	for i := 0; i+1 < len(jobs.Content); i += 2 {
		job := jobs.Content[i+1]
		steps := mappingValueNode(job, "steps")
		if steps == nil || steps.Kind != yaml.SequenceNode {
			continue
		}
		for _, step := range steps.Content {
			usesNode := mappingValueNode(step, "uses")
			if usesNode == nil || usesNode.Kind != yaml.ScalarNode {
				continue
			}
			if info, ok := parseUsesReference(content, usesNode); ok {
				out = append(out, info)
			}
		}
	}
	return out, nil
}

// parseUsesReference splits an `owner/repo[/path]@ref` string into a
// PackageInfo. References to local actions (`./path`) or Docker images
// (`docker://...`) are skipped -- neither has a version registry this
// system can check.
func parseUsesReference(content []byte, node *yaml.Node) (PackageInfo, bool) {
	raw := node.Value
	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "docker://") {
		return PackageInfo{}, false
	}

	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return PackageInfo{}, false
	}
	repoPath, ref := raw[:at], raw[at+1:]
	if repoPath == "" || ref == "" {
		return PackageInfo{}, false
	}

	parts := strings.SplitN(repoPath, "/", 3)
	if len(parts) < 2 {
		return PackageInfo{}, false
	}
	name := parts[0] + "/" + parts[1]

	column := node.Column
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		column++ // yaml.v3 points at the opening quote; the value starts after it.
	}

	info := PackageInfo{
		Name:        name,
		VersionSpec: ref,
		Registry:    registrykind.GitHubActions,
		Span:        yamlSpan(content, node.Line, column+at+1, ref),
	}
	if isCommitSHA(ref) {
		info.CommitHash = ref
	}
	return info, true
}

func isCommitSHA(ref string) bool {
	if len(ref) != 40 {
		return false
	}
	for _, c := range ref {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func mappingValueNode(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
