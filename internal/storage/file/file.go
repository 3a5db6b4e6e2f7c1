package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/chris-regnier/featurectl/internal/storage"
)

const (
	prefsFileName = "prefs.json"
	cacheFileName = "catalog-cache.json"
)

// Store implements storage.Storage using JSON files in the data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a new JSON file storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}
	return &Store{dir: dataDir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Close is a no-op for the file backend.
func (s *Store) Close() error {
	return nil
}

// GetPref returns the raw JSON value stored under key.
func (s *Store) GetPref(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.readPrefs()
	if err != nil {
		return nil, err
	}
	v, ok := prefs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return []byte(v), nil
}

// SetPref stores value under key. value must be valid JSON.
func (s *Store) SetPref(key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: value for %q is not valid JSON", storage.ErrValidation, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.readPrefs()
	if err != nil {
		return err
	}
	prefs[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding preferences: %v", storage.ErrStorage, err)
	}
	return s.atomicWrite(filepath.Join(s.dir, prefsFileName), data)
}

func (s *Store) readPrefs() (map[string]json.RawMessage, error) {
	prefs := map[string]json.RawMessage{}
	data, err := os.ReadFile(filepath.Join(s.dir, prefsFileName))
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading preferences: %v", storage.ErrStorage, err)
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("%w: parsing preferences: %v", storage.ErrStorage, err)
	}
	return prefs, nil
}

// GetCatalog returns the cached snapshot for url.
func (s *Store) GetCatalog(url string) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache, err := s.readCache()
	if err != nil {
		return storage.Snapshot{}, err
	}
	snap, ok := cache[url]
	if !ok {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	return snap, nil
}

// PutCatalog replaces the cached snapshot for snap.URL.
func (s *Store) PutCatalog(snap storage.Snapshot) error {
	if snap.URL == "" {
		return fmt.Errorf("%w: snapshot URL must not be empty", storage.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cache, err := s.readCache()
	if err != nil {
		// A corrupt cache is rebuilt rather than blocking new snapshots.
		cache = map[string]storage.Snapshot{}
	}
	cache[snap.URL] = snap

	data, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("%w: encoding catalog cache: %v", storage.ErrStorage, err)
	}
	return s.atomicWrite(filepath.Join(s.dir, cacheFileName), data)
}

// ClearCatalog removes every cached snapshot.
func (s *Store) ClearCatalog() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, cacheFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing catalog cache: %v", storage.ErrStorage, err)
	}
	return nil
}

func (s *Store) readCache() (map[string]storage.Snapshot, error) {
	cache := map[string]storage.Snapshot{}
	data, err := os.ReadFile(filepath.Join(s.dir, cacheFileName))
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalog cache: %v", storage.ErrStorage, err)
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("%w: parsing catalog cache: %v", storage.ErrStorage, err)
	}
	return cache, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}
	return nil
}
