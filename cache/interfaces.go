// Package cache provides the disk-backed store shared by every workflow
// invocation, with max-age based reuse of previously fetched JSON responses.
package cache

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrCacheNotFound is returned when a cache entry is not found or expired
	ErrCacheNotFound = errors.New("cache entry not found or expired")
)

// Entry represents a cached entry with metadata
type Entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read retrieves a cache entry by key with max-age validation.
	// A maxAge of zero skips the age check.
	// Returns the entry and true if found and not expired, false otherwise
	Read(key string, maxAge time.Duration) (*Entry, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores a cache entry with the given key, stamping FetchedAt
	Write(key string, entry *Entry) error
}

// ReadWriter combines both cache operations
type ReadWriter interface {
	Reader
	Writer
}
