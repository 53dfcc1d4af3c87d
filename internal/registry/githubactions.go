package registry

import (
	"context"
	"fmt"

	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

const defaultGitHubAPIBaseURL = "https://api.github.com"

// GitHubActionsRegistry fetches the tag list for an "owner/repo" action,
// used as the known-version set the GitHubActions matcher compares
// against.
type GitHubActionsRegistry struct {
	http    *httpClient
	baseURL string
}

func NewGitHubActionsRegistry(baseURL string) *GitHubActionsRegistry {
	if baseURL == "" {
		baseURL = defaultGitHubAPIBaseURL
	}
	return &GitHubActionsRegistry{http: newHTTPClient(), baseURL: baseURL}
}

func (r *GitHubActionsRegistry) RegistryKind() registrykind.Kind { return registrykind.GitHubActions }

type githubTag struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// FetchAllVersions paginates through the repository's tags. GitHub returns
// tags newest-first; the client reverses that to match this system's
// oldest-first convention.
func (r *GitHubActionsRegistry) FetchAllVersions(ctx context.Context, name string) (version.Versions, error) {
	var allTags []githubTag
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/tags?per_page=100&page=%d", r.baseURL, name, page)
		var tags []githubTag
		if err := r.http.fetchJSON(ctx, url, name, &tags); err != nil {
			return version.Versions{}, err
		}
		if len(tags) == 0 {
			break
		}
		allTags = append(allTags, tags...)
		if len(tags) < 100 {
			break
		}
	}

	// Tag names, oldest first, so the last element is "latest" per this
	// system's convention. Commit SHAs are prepended rather than
	// interleaved by date, since the matcher only needs to find a SHA
	// pin among the known versions, not order it.
	shas := make([]string, 0, len(allTags))
	tagNames := make([]string, len(allTags))
	for i, t := range allTags {
		tagNames[len(allTags)-1-i] = t.Name
		if t.Commit.SHA != "" {
			shas = append(shas, t.Commit.SHA)
		}
	}

	versions := append(shas, tagNames...)
	return version.Versions{Versions: versions}, nil
}
