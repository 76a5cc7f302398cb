package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileCache implements ReadWriter using one JSON file per key
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a file-based cache rooted at dir.
// If dir is empty, uses a "naverflow" directory under the user cache dir.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "naverflow")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the directory entries are stored in.
func (fc *FileCache) Dir() string {
	return fc.dir
}

// Read implements Reader interface
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check if expired
	if maxAge > 0 && fc.now().Sub(entry.FetchedAt) > maxAge {
		return &entry, false // Return entry but mark as expired
	}

	return &entry, true
}

// Write implements Writer interface
func (fc *FileCache) Write(key string, entry *Entry) error {
	path := fc.path(key)
	entry.FetchedAt = fc.now()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename so readers never see a partial entry
	tmpPath := fmt.Sprintf("%s.tmp.%s", path, uuid.NewString())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// path generates the full filesystem path for a cache key
func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, key)
}
