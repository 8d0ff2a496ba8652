package datasource

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheMaxAge is how long a cached document is served in cache mode.
const CacheMaxAge = 24 * time.Hour

// cacheFileName derives the cache file for uri. The hash prefix keeps
// same-named documents from different channels apart.
func cacheFileName(uri, name string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])[:16] + "_" + name
}

// loadCached returns the cached document for uri when it is younger than
// maxAge. A missing or stale entry returns nil, nil.
func loadCached(dir, uri, name string, maxAge time.Duration, now time.Time) ([]byte, error) {
	path := filepath.Join(dir, cacheFileName(uri, name))
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking cache: %w", err)
	}
	if now.Sub(info.ModTime()) > maxAge {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return data, nil
}

// saveCached writes data to the cache, replacing any previous copy.
func saveCached(dir, uri, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	path := filepath.Join(dir, cacheFileName(uri, name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalizing cache: %w", err)
	}
	return nil
}
