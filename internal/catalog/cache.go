package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/storage"
)

// CachedSource puts a cache-aside read in front of another Source. A fresh
// snapshot is served from the cache; otherwise the upstream is fetched and
// the result stored. Upstream failures are returned as-is and never answered
// from a stale snapshot.
type CachedSource struct {
	Upstream Source
	Cache    storage.CatalogCache
	Key      string        // cache key, normally the catalog URL
	TTL      time.Duration // 0 disables the cache
	Refresh  bool          // skip the cache read, still write on success
	Now      func() time.Time
	Logger   *slog.Logger
}

// Fetch implements Source.
func (c *CachedSource) Fetch(ctx context.Context) ([]feature.Feature, error) {
	logger := c.Logger
	if logger == nil {
		logger = logging.New("cache")
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	if c.TTL <= 0 || c.Cache == nil {
		return c.Upstream.Fetch(ctx)
	}

	if !c.Refresh {
		snap, err := c.Cache.GetCatalog(c.Key)
		switch {
		case err == nil && now().Sub(snap.FetchedAt) < c.TTL:
			logger.Debug("serving cached catalog", "key", c.Key, "age", now().Sub(snap.FetchedAt).Round(time.Second))
			return snap.Features, nil
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			logger.Debug("catalog cache unreadable", "key", c.Key, "error", err)
		}
	}

	features, err := c.Upstream.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	snap := storage.Snapshot{URL: c.Key, Features: features, FetchedAt: now().UTC()}
	if err := c.Cache.PutCatalog(snap); err != nil {
		logger.Warn("could not write catalog cache", "key", c.Key, "error", err)
	}
	return features, nil
}
