package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/featurectl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "featurectl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS prefs (
			key        TEXT PRIMARY KEY CHECK(length(key) > 0),
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS catalog_cache (
			url        TEXT PRIMARY KEY,
			features   TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetPref returns the raw JSON value stored under key.
func (s *Store) GetPref(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: querying preference: %v", storage.ErrStorage, err)
	}
	return []byte(value), nil
}

// SetPref stores value under key. value must be valid JSON.
func (s *Store) SetPref(key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: value for %q is not valid JSON", storage.ErrValidation, key)
	}

	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: writing preference: %v", storage.ErrStorage, err)
	}
	return nil
}

// GetCatalog returns the cached snapshot for url.
func (s *Store) GetCatalog(url string) (storage.Snapshot, error) {
	var body, fetchedStr string
	err := s.db.QueryRow(
		"SELECT features, fetched_at FROM catalog_cache WHERE url = ?", url,
	).Scan(&body, &fetchedStr)
	if err == sql.ErrNoRows {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("%w: querying catalog cache: %v", storage.ErrStorage, err)
	}

	snap := storage.Snapshot{URL: url}
	if err := json.Unmarshal([]byte(body), &snap.Features); err != nil {
		return storage.Snapshot{}, fmt.Errorf("%w: decoding cached catalog: %v", storage.ErrStorage, err)
	}
	snap.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedStr)
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("%w: parsing fetched_at: %v", storage.ErrStorage, err)
	}
	return snap, nil
}

// PutCatalog replaces the cached snapshot for snap.URL.
func (s *Store) PutCatalog(snap storage.Snapshot) error {
	if snap.URL == "" {
		return fmt.Errorf("%w: snapshot URL must not be empty", storage.ErrValidation)
	}
	body, err := json.Marshal(snap.Features)
	if err != nil {
		return fmt.Errorf("%w: encoding catalog: %v", storage.ErrStorage, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO catalog_cache (url, features, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET features = excluded.features, fetched_at = excluded.fetched_at`,
		snap.URL, string(body), snap.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: writing catalog cache: %v", storage.ErrStorage, err)
	}
	return nil
}

// ClearCatalog removes every cached snapshot.
func (s *Store) ClearCatalog() error {
	if _, err := s.db.Exec("DELETE FROM catalog_cache"); err != nil {
		return fmt.Errorf("%w: clearing catalog cache: %v", storage.ErrStorage, err)
	}
	return nil
}
