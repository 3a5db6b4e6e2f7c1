package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/chris-regnier/featurectl/internal/storage"
	"github.com/chris-regnier/featurectl/internal/storage/file"
)

// stubSource returns canned results and counts calls.
type stubSource struct {
	features []feature.Feature
	err      error
	calls    int
}

func (s *stubSource) Fetch(ctx context.Context) ([]feature.Feature, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.features, s.err
}

func newCacheStore(t *testing.T) storage.CatalogCache {
	t.Helper()
	s, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("file.New: %v", err)
	}
	return s
}

func TestCachedSourceServesFreshSnapshot(t *testing.T) {
	upstream := &stubSource{features: []feature.Feature{{Name: "Alpha"}}}
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c := &CachedSource{
		Upstream: upstream,
		Cache:    newCacheStore(t),
		Key:      "http://localhost:3000/features.json",
		TTL:      10 * time.Minute,
		Now:      func() time.Time { return now },
	}

	for i := 0; i < 3; i++ {
		got, err := c.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if len(got) != 1 || got[0].Name != "Alpha" {
			t.Fatalf("Fetch %d = %+v", i, got)
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}

	now = now.Add(11 * time.Minute)
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch after expiry: %v", err)
	}
	if upstream.calls != 2 {
		t.Errorf("upstream calls after expiry = %d, want 2", upstream.calls)
	}
}

func TestCachedSourceRefreshBypassesRead(t *testing.T) {
	upstream := &stubSource{features: []feature.Feature{{Name: "Alpha"}}}
	c := &CachedSource{Upstream: upstream, Cache: newCacheStore(t), Key: "k", TTL: time.Hour}

	c.Fetch(context.Background())
	c.Refresh = true
	c.Fetch(context.Background())
	if upstream.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", upstream.calls)
	}
}

func TestCachedSourceDoesNotServeStaleOnFailure(t *testing.T) {
	upstream := &stubSource{features: []feature.Feature{{Name: "Alpha"}}}
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c := &CachedSource{
		Upstream: upstream,
		Cache:    newCacheStore(t),
		Key:      "k",
		TTL:      time.Minute,
		Now:      func() time.Time { return now },
	}
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	now = now.Add(time.Hour)
	upstream.err = &FetchError{URL: "k", Status: 500}
	upstream.features = nil
	_, err := c.Fetch(context.Background())
	if !IsFetchError(err) {
		t.Errorf("expected FetchError from upstream, got %v", err)
	}
}

func TestCachedSourceDisabled(t *testing.T) {
	upstream := &stubSource{features: []feature.Feature{{Name: "Alpha"}}}
	c := &CachedSource{Upstream: upstream, Cache: newCacheStore(t), Key: "k"}
	c.Fetch(context.Background())
	c.Fetch(context.Background())
	if upstream.calls != 2 {
		t.Errorf("TTL 0 must not cache; upstream calls = %d", upstream.calls)
	}
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) GetCatalog(string) (storage.Snapshot, error) {
	return storage.Snapshot{}, storage.ErrStorage
}
func (brokenCache) PutCatalog(storage.Snapshot) error { return errors.New("disk full") }
func (brokenCache) ClearCatalog() error               { return nil }

func TestCachedSourceBrokenCacheFallsThrough(t *testing.T) {
	upstream := &stubSource{features: []feature.Feature{{Name: "Alpha"}}}
	c := &CachedSource{Upstream: upstream, Cache: brokenCache{}, Key: "k", TTL: time.Hour}
	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("broken cache must not fail the fetch: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d features", len(got))
	}
}
