package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/yourusername/epl-predictor/internal/models"
)

// CachedSource memoises another source's results for a fixed TTL. When a
// cache file is set, fresh entries are loaded from it on construction and
// written back after every fetch, so the TTL spans CLI runs.
type CachedSource struct {
	inner DataSource
	key   string
	path  string
	cache *cache.Cache
}

// cacheEntry is the on-disk form of one cached feed
type cacheEntry struct {
	Expiration int64                `json:"expiration"`
	Results    []models.MatchResult `json:"results"`
}

// NewCachedSource wraps inner with a TTL cache keyed by key. An empty path
// keeps the cache in memory only. A missing or unreadable cache file is
// treated as empty.
func NewCachedSource(inner DataSource, key string, ttl time.Duration, path string) *CachedSource {
	return &CachedSource{
		inner: inner,
		key:   key,
		path:  path,
		cache: cache.NewFrom(ttl, 2*ttl, loadCacheFile(path)),
	}
}

// FetchResults returns cached results while fresh, fetching otherwise.
// Failed fetches are not cached.
func (s *CachedSource) FetchResults(ctx context.Context) ([]models.MatchResult, error) {
	if cached, ok := s.cache.Get(s.key); ok {
		return copyResults(cached.([]models.MatchResult)), nil
	}

	results, err := s.inner.FetchResults(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(s.key, copyResults(results))
	if err := s.persist(); err != nil {
		return nil, NewDataSourceError(s.inner.Name(), ErrCodeUnknown, "failed to write cache file", err)
	}
	return results, nil
}

// Name returns the wrapped source's name
func (s *CachedSource) Name() string {
	return s.inner.Name()
}

// Close closes the wrapped source. The cache file is left in place.
func (s *CachedSource) Close() error {
	return s.inner.Close()
}

func (s *CachedSource) persist() error {
	if s.path == "" {
		return nil
	}

	entries := make(map[string]cacheEntry)
	for key, item := range s.cache.Items() {
		results, ok := item.Object.([]models.MatchResult)
		if !ok {
			continue
		}
		entries[key] = cacheEntry{Expiration: item.Expiration, Results: results}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// loadCacheFile returns the unexpired entries stored at path
func loadCacheFile(path string) map[string]cache.Item {
	items := make(map[string]cache.Item)
	if path == "" {
		return items
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return items
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return items
	}

	now := time.Now().UnixNano()
	for key, entry := range entries {
		if entry.Expiration > 0 && entry.Expiration <= now {
			continue
		}
		items[key] = cache.Item{Object: entry.Results, Expiration: entry.Expiration}
	}
	return items
}

func copyResults(in []models.MatchResult) []models.MatchResult {
	out := make([]models.MatchResult, len(in))
	copy(out, in)
	return out
}
