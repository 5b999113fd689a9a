package transcript

import (
	"context"
	"time"

	"github.com/dgnsrekt/yt2speech/internal/cache"
)

// DefaultCacheTTL is how long fetched transcripts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// CachedFetcher checks the cache store before delegating to an inner
// Fetcher, and stores fresh results on a miss. Cache failures never
// surface: the decorator behaves like its inner Fetcher, just slower.
type CachedFetcher struct {
	inner Fetcher
	cache *cache.Manager
	ttl   time.Duration
}

// NewCachedFetcher wraps inner with transcript caching. A
// non-positive ttl falls back to DefaultCacheTTL.
func NewCachedFetcher(inner Fetcher, manager *cache.Manager, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{inner: inner, cache: manager, ttl: ttl}
}

// Fetch returns the cached transcript for videoID when present,
// otherwise fetches and caches it. Fetch errors pass through
// unwrapped so callers can distinguish NotFound from Disabled.
func (f *CachedFetcher) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	key := cache.Key("transcript", videoID)

	var segments []Segment
	if f.cache.Get(ctx, key, &segments) {
		return segments, nil
	}

	segments, err := f.inner.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	f.cache.Set(ctx, key, segments, f.ttl)
	return segments, nil
}
