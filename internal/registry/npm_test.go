package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNpmFetchAllVersionsSortsByTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"versions": {"4.17.21": {}, "4.17.19": {}, "4.17.20": {}},
			"dist-tags": {"latest": "4.17.21"},
			"time": {"4.17.19": "2020-01-01T00:00:00.000Z", "4.17.20": "2020-02-01T00:00:00.000Z", "4.17.21": "2020-03-01T00:00:00.000Z"}
		}`))
	}))
	defer srv.Close()

	reg := NewNpmRegistry(srv.URL)
	got, err := reg.FetchAllVersions(context.Background(), "lodash")
	if err != nil {
		t.Fatalf("FetchAllVersions: %v", err)
	}

	want := []string{"4.17.19", "4.17.20", "4.17.21"}
	if len(got.Versions) != len(want) {
		t.Fatalf("got %v, want %v", got.Versions, want)
	}
	for i := range want {
		if got.Versions[i] != want[i] {
			t.Errorf("got %v, want %v", got.Versions, want)
			break
		}
	}
	if got.DistTags["latest"] != "4.17.21" {
		t.Errorf("DistTags[latest] = %q, want 4.17.21", got.DistTags["latest"])
	}
}

func TestNpmFetchAllVersionsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reg := NewNpmRegistry(srv.URL)
	_, err := reg.FetchAllVersions(context.Background(), "does-not-exist")
	if _, ok := err.(ErrNotFound); !ok {
		t.Errorf("expected ErrNotFound, got %v (%T)", err, err)
	}
}

func TestEncodePackageName(t *testing.T) {
	cases := map[string]string{
		"lodash":       "lodash",
		"@scope/name":  "@scope%2Fname",
		"@a/b-c":       "@a%2Fb-c",
	}
	for in, want := range cases {
		if got := encodePackageName(in); got != want {
			t.Errorf("encodePackageName(%q) = %q, want %q", in, got, want)
		}
	}
}
