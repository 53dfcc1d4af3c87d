package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCratesFetchAllVersionsDropsYankedAndSortsByCreation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"versions": [
			{"num": "1.1.0", "yanked": false, "created_at": "2021-01-01T00:00:00+00:00"},
			{"num": "1.0.100", "yanked": false, "created_at": "2020-06-01T00:00:00+00:00"},
			{"num": "1.0.0", "yanked": false, "created_at": "2020-01-01T00:00:00+00:00"},
			{"num": "1.0.50", "yanked": true, "created_at": "2020-03-01T00:00:00+00:00"}
		]}`))
	}))
	defer srv.Close()

	reg := NewCratesIoRegistry(srv.URL)
	got, err := reg.FetchAllVersions(context.Background(), "serde")
	if err != nil {
		t.Fatalf("FetchAllVersions: %v", err)
	}

	want := []string{"1.0.0", "1.0.100", "1.1.0"}
	if len(got.Versions) != len(want) {
		t.Fatalf("got %v, want %v", got.Versions, want)
	}
	for i := range want {
		if got.Versions[i] != want[i] {
			t.Errorf("got %v, want %v", got.Versions, want)
			break
		}
	}
}
