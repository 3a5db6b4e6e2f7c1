// Package prefs persists display preferences across sessions.
//
// Every read or write goes through a scoped fallback: a missing key, an
// unreadable value or a failing backend yields the default on read and skips
// the write on save. Failures are logged at debug level and never returned.
package prefs

import (
	"encoding/json"
	"log/slog"

	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/storage"
)

// KeyCompactMode stores the compact card layout toggle.
const KeyCompactMode = "compactMode"

// DefaultCompactMode applies when nothing has been stored.
const DefaultCompactMode = true

// Bridge reads and writes preferences on a storage.PrefStore. A nil store is
// valid and behaves like a store where every access fails.
type Bridge struct {
	store  storage.PrefStore
	logger *slog.Logger
}

// NewBridge returns a bridge over store.
func NewBridge(store storage.PrefStore) *Bridge {
	return &Bridge{store: store, logger: logging.New("prefs")}
}

// Get decodes the value stored under key, or returns fallback.
func Get[T any](b *Bridge, key string, fallback T) T {
	if b == nil || b.store == nil {
		return fallback
	}
	raw, err := b.store.GetPref(key)
	if err != nil {
		b.logger.Debug("preference unavailable, using default", "key", key, "error", err)
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		b.logger.Debug("preference unreadable, using default", "key", key, "error", err)
		return fallback
	}
	return v
}

// Set encodes value as JSON and stores it under key, best-effort.
func (b *Bridge) Set(key string, value any) {
	if b == nil || b.store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		b.logger.Debug("preference not encodable, skipping", "key", key, "error", err)
		return
	}
	if err := b.store.SetPref(key, raw); err != nil {
		b.logger.Debug("preference not persisted", "key", key, "error", err)
	}
}

// CompactMode returns the stored compact toggle, true by default.
func (b *Bridge) CompactMode() bool {
	return Get(b, KeyCompactMode, DefaultCompactMode)
}

// SetCompactMode persists the compact toggle.
func (b *Bridge) SetCompactMode(compact bool) {
	b.Set(KeyCompactMode, compact)
}
