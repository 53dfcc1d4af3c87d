package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

const defaultGoProxyBaseURL = "https://proxy.golang.org"

// GoProxyRegistry fetches version lists from a Go module proxy.
type GoProxyRegistry struct {
	http    *httpClient
	baseURL string
}

func NewGoProxyRegistry(baseURL string) *GoProxyRegistry {
	if baseURL == "" {
		baseURL = defaultGoProxyBaseURL
	}
	return &GoProxyRegistry{http: newHTTPClient(), baseURL: baseURL}
}

func (r *GoProxyRegistry) RegistryKind() registrykind.Kind { return registrykind.GoProxy }

// escapeModulePath applies the Go module proxy's case-encoding: every
// uppercase letter is replaced by "!" followed by its lowercase form, so
// the proxy's case-insensitive filesystem-backed storage doesn't collide
// module paths that differ only in case.
func escapeModulePath(path string) string {
	var b strings.Builder
	for _, r := range path {
		if unicode.IsUpper(r) {
			b.WriteByte('!')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type goProxyLatestResponse struct {
	Version string `json:"Version"`
}

func (r *GoProxyRegistry) FetchAllVersions(ctx context.Context, name string) (version.Versions, error) {
	escaped := escapeModulePath(name)

	listURL := fmt.Sprintf("%s/%s/@v/list", r.baseURL, escaped)
	text, err := r.http.fetchText(ctx, listURL, name)
	var versions []string
	if err == nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				versions = append(versions, line)
			}
		}
	} else if _, isNotFound := err.(ErrNotFound); !isNotFound {
		return version.Versions{}, err
	}

	if len(versions) == 0 {
		latestURL := fmt.Sprintf("%s/%s/@latest", r.baseURL, escaped)
		var latest goProxyLatestResponse
		if jsonErr := r.http.fetchJSON(ctx, latestURL, name, &latest); jsonErr != nil {
			if err != nil {
				return version.Versions{}, err
			}
			return version.Versions{}, jsonErr
		}
		if latest.Version != "" {
			versions = []string{latest.Version}
		}
	}

	sort.Slice(versions, func(i, j int) bool {
		vi, erri := semver.NewVersion(strings.TrimPrefix(versions[i], "v"))
		vj, errj := semver.NewVersion(strings.TrimPrefix(versions[j], "v"))
		if erri != nil || errj != nil {
			return versions[i] < versions[j]
		}
		return vi.LessThan(vj)
	})

	return version.Versions{Versions: versions}, nil
}
