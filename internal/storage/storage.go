package storage

import (
	"errors"
	"time"

	"github.com/chris-regnier/featurectl/internal/feature"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Snapshot is a cached copy of one catalog endpoint's response.
type Snapshot struct {
	URL       string            `json:"url"`
	Features  []feature.Feature `json:"features"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// PrefStore holds small user preferences as opaque JSON values.
type PrefStore interface {
	GetPref(key string) ([]byte, error)
	SetPref(key string, value []byte) error
}

// CatalogCache keeps the last fetched catalog per endpoint.
type CatalogCache interface {
	GetCatalog(url string) (Snapshot, error)
	PutCatalog(s Snapshot) error
	ClearCatalog() error
}

// Storage defines the interface for featurectl persistence.
type Storage interface {
	PrefStore
	CatalogCache
	Close() error
}

// ValidateKey checks that a preference key is usable.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("preference key must not be empty")
	}
	return nil
}
