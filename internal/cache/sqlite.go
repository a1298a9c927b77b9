package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists cache entries in a local SQLite database.
// Writes from concurrent workers serialize on the database handle;
// there is no cross-key transactional guarantee and none is needed,
// since a lost write only means repeating idempotent provider work.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the cache database at the given path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create cache directory: %v", ErrCacheIO, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open cache database: %v", ErrCacheIO, err)
	}

	// A single connection avoids SQLITE_BUSY under concurrent workers
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS entries (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to create cache schema: %v", ErrCacheIO, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get retrieves a cached value
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get failed: %v", ErrCacheIO, err)
	}
	return value, true, nil
}

// Set stores a value under the key
func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO entries (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("%w: set failed: %v", ErrCacheIO, err)
	}
	return nil
}

// Clear removes all entries
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("%w: clear failed: %v", ErrCacheIO, err)
	}
	return nil
}

// Len returns the number of stored entries
func (s *SQLiteStore) Len() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count failed: %v", ErrCacheIO, err)
	}
	return count, nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
