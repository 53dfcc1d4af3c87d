package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoProxyFetchAllVersionsFromList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/golang.org/x/text/@v/list" {
			w.Write([]byte("v0.14.0\nv0.12.0\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reg := NewGoProxyRegistry(srv.URL)
	got, err := reg.FetchAllVersions(context.Background(), "golang.org/x/text")
	if err != nil {
		t.Fatalf("FetchAllVersions: %v", err)
	}
	want := []string{"v0.12.0", "v0.14.0"}
	for i := range want {
		if got.Versions[i] != want[i] {
			t.Errorf("got %v, want %v", got.Versions, want)
			break
		}
	}
}

func TestGoProxyFetchAllVersionsFallsBackToLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/example.com/mod/@v/list":
			w.Write([]byte(""))
		case "/example.com/mod/@latest":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"Version": "v1.2.3"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	reg := NewGoProxyRegistry(srv.URL)
	got, err := reg.FetchAllVersions(context.Background(), "example.com/mod")
	if err != nil {
		t.Fatalf("FetchAllVersions: %v", err)
	}
	if len(got.Versions) != 1 || got.Versions[0] != "v1.2.3" {
		t.Errorf("got %v, want [v1.2.3]", got.Versions)
	}
}

func TestEscapeModulePath(t *testing.T) {
	if got := escapeModulePath("github.com/Masterminds/semver"); got != "github.com/!masterminds/semver" {
		t.Errorf("escapeModulePath = %q", got)
	}
}
