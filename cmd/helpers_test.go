package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/chris-regnier/featurectl/internal/config"
	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/chris-regnier/featurectl/internal/storage"
	"github.com/chris-regnier/featurectl/internal/storage/file"
)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	s, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// catalogServer serves features as the catalog endpoint and counts hits.
func catalogServer(t *testing.T, features []feature.Feature) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	body, err := json.Marshal(features)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func sampleFeatures(n int) []feature.Feature {
	out := make([]feature.Feature, n)
	for i := range out {
		tags := []string{"utility"}
		if i%2 == 0 {
			tags = []string{"visual"}
		}
		out[i] = feature.Feature{
			Name:        fmt.Sprintf("Feature%03d", i),
			Description: "Does a thing.",
			Tags:        tags,
			Authors:     []feature.Author{{Name: "thor"}},
		}
	}
	return out
}

// setupTestEnv points the command globals at a test catalog server and a
// temporary store.
func setupTestEnv(t *testing.T, features []feature.Feature) *atomic.Int32 {
	t.Helper()
	srv, hits := catalogServer(t, features)
	store = setupTestStore(t)
	appConfig = &config.Config{
		Storage:    "file",
		CatalogURL: srv.URL + "/features.json",
		SiteURL:    "http://localhost:3000",
		CacheTTL:   "10m",
		MaxWidth:   100,
	}
	jsonOutput = false
	refreshCache = false
	filterFlags.reset()
	t.Cleanup(filterFlags.reset)
	return hits
}
