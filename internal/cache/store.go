// Package cache provides the persistent key-value store used to avoid
// repeated provider calls. Entries are content-addressed: the key is a
// fingerprint of the request, so identical work always maps to the same
// entry and entries never need invalidation.
package cache

import "errors"

// ErrCacheIO marks storage-level failures. Callers treat it as non-fatal
// and fall back to uncached operation.
var ErrCacheIO = errors.New("cache storage unavailable")

// Store is a content-addressed key-value store.
type Store interface {
	// Get retrieves a cached value. Returns false if the key is absent.
	Get(key string) (string, bool, error)

	// Set stores a value under the key. Existing entries are overwritten
	// with identical content, so Set is idempotent.
	Set(key, value string) error

	// Clear removes all entries.
	Clear() error

	// Len returns the number of stored entries.
	Len() (int, error)
}
