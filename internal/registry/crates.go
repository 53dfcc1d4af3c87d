package registry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

const defaultCratesBaseURL = "https://crates.io/api/v1/crates"

type cratesIoResponse struct {
	Versions []cratesIoVersion `json:"versions"`
}

type cratesIoVersion struct {
	Num       string `json:"num"`
	Yanked    bool   `json:"yanked"`
	CreatedAt string `json:"created_at"`
}

// CratesIoRegistry fetches version lists from the crates.io registry.
type CratesIoRegistry struct {
	http    *httpClient
	baseURL string
}

func NewCratesIoRegistry(baseURL string) *CratesIoRegistry {
	if baseURL == "" {
		baseURL = defaultCratesBaseURL
	}
	return &CratesIoRegistry{http: newHTTPClient(), baseURL: baseURL}
}

func (r *CratesIoRegistry) RegistryKind() registrykind.Kind { return registrykind.CratesIo }

func (r *CratesIoRegistry) FetchAllVersions(ctx context.Context, name string) (version.Versions, error) {
	reqURL := fmt.Sprintf("%s/%s", r.baseURL, name)

	var resp cratesIoResponse
	if err := r.http.fetchJSON(ctx, reqURL, name, &resp); err != nil {
		return version.Versions{}, err
	}

	type entry struct {
		version string
		created time.Time
	}
	entries := make([]entry, 0, len(resp.Versions))
	for _, v := range resp.Versions {
		if v.Yanked {
			continue
		}
		e := entry{version: v.Num}
		if t, err := time.Parse(time.RFC3339, v.CreatedAt); err == nil {
			e.created = t
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].created.Before(entries[j].created) })

	versions := make([]string, len(entries))
	for i, e := range entries {
		versions[i] = e.version
	}
	return version.Versions{Versions: versions}, nil
}
