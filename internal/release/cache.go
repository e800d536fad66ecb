package release

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "viewer-release.json"
	// DefaultCacheMaxAge is how long a cached answer is trusted.
	DefaultCacheMaxAge = 24 * time.Hour
)

// Cache holds the last check result.
type Cache struct {
	LatestVersion string    `json:"latest_version"`
	CheckedAt     time.Time `json:"checked_at"`
}

// LoadCache reads the cache from dir. Returns nil, nil if there is none.
func LoadCache(dir string) (*Cache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading release cache: %w", err)
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing release cache: %w", err)
	}
	return &c, nil
}

// SaveCache writes c to dir.
func SaveCache(dir string, c *Cache) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling release cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing release cache: %w", err)
	}
	return nil
}

// IsStale reports whether c is nil or older than maxAge.
func IsStale(c *Cache, maxAge time.Duration) bool {
	return c == nil || time.Since(c.CheckedAt) > maxAge
}

// LatestVersion returns the latest release version, from the cache in dir
// when it is fresh, otherwise from GitHub (and then cached). A broken cache
// file is ignored.
func (c *Checker) LatestVersion(ctx context.Context, dir string) (string, error) {
	cache, err := LoadCache(dir)
	if err == nil && !IsStale(cache, DefaultCacheMaxAge) {
		return cache.LatestVersion, nil
	}

	rel, err := c.Latest(ctx)
	if err != nil {
		return "", err
	}
	version := rel.Version()
	_ = SaveCache(dir, &Cache{LatestVersion: version, CheckedAt: time.Now()})
	return version, nil
}
