package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

const defaultNpmBaseURL = "https://registry.npmjs.org"

type npmPackageResponse struct {
	Versions map[string]json.RawMessage `json:"versions"`
	DistTags map[string]string          `json:"dist-tags"`
	Time     map[string]string          `json:"time"`
}

// NpmRegistry fetches version lists from the npm registry.
type NpmRegistry struct {
	http    *httpClient
	baseURL string
}

// NewNpmRegistry builds a registry client against baseURL, or the public
// npm registry when baseURL is empty.
func NewNpmRegistry(baseURL string) *NpmRegistry {
	if baseURL == "" {
		baseURL = defaultNpmBaseURL
	}
	return &NpmRegistry{http: newHTTPClient(), baseURL: baseURL}
}

func (r *NpmRegistry) RegistryKind() registrykind.Kind { return registrykind.Npm }

// encodePackageName URL-encodes a scoped package name's slash, matching
// npm's own convention: "@scope/name" -> "@scope%2Fname".
func encodePackageName(name string) string {
	if !strings.HasPrefix(name, "@") {
		return name
	}
	parts := strings.SplitN(name, "/", 2)
	if len(parts) != 2 {
		return name
	}
	return parts[0] + "%2F" + url.PathEscape(parts[1])
}

func (r *NpmRegistry) FetchAllVersions(ctx context.Context, name string) (version.Versions, error) {
	reqURL := fmt.Sprintf("%s/%s", r.baseURL, encodePackageName(name))

	var resp npmPackageResponse
	if err := r.http.fetchJSON(ctx, reqURL, name, &resp); err != nil {
		return version.Versions{}, err
	}

	type versionTime struct {
		version string
		t       time.Time
		hasTime bool
	}
	entries := make([]versionTime, 0, len(resp.Versions))
	for v := range resp.Versions {
		vt := versionTime{version: v}
		if ts, ok := resp.Time[v]; ok {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				vt.t = parsed
				vt.hasTime = true
			}
		}
		entries = append(entries, vt)
	}

	// Missing timestamps sort first.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hasTime != entries[j].hasTime {
			return !entries[i].hasTime
		}
		if !entries[i].hasTime {
			return entries[i].version < entries[j].version
		}
		return entries[i].t.Before(entries[j].t)
	})

	versions := make([]string, len(entries))
	for i, e := range entries {
		versions[i] = e.version
	}

	return version.Versions{Versions: versions, DistTags: resp.DistTags}, nil
}
