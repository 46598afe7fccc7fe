package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension of cache entries.
const Ext = ".json"

// FileCache implements a directory-backed cache for CLI usage.
// Each key maps to <dir>/<key>.json holding the raw value.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.Path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value, replacing any previous one atomically.
func (c *FileCache) Set(ctx context.Context, key string, data []byte) error {
	path := c.Path(key)
	tmp, err := os.CreateTemp(c.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.Path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Keys lists the layout keys currently stored.
func (c *FileCache) Keys() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, KeyPrefix+"*"+Ext))
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = strings.TrimSuffix(filepath.Base(m), Ext)
	}
	return keys, nil
}

// Clear removes every stored layout and returns how many were deleted.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	keys, err := c.Keys()
	if err != nil {
		return 0, err
	}
	for i, k := range keys {
		if err := c.Delete(ctx, k); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// Path converts a cache key to a file path.
func (c *FileCache) Path(key string) string {
	return filepath.Join(c.dir, key+Ext)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
