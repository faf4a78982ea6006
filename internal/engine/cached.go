package engine

import (
	"context"
	"time"

	"github.com/law-makers/reviewscrape/internal/cache"
	"github.com/law-makers/reviewscrape/pkg/models"
)

// CachingFetcher serves repeated URLs from a page cache
type CachingFetcher struct {
	inner Fetcher
	cache cache.Cache
	ttl   time.Duration
}

// NewCachingFetcher wraps inner with c
func NewCachingFetcher(inner Fetcher, c cache.Cache, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{inner: inner, cache: c, ttl: ttl}
}

// Name returns the wrapped fetcher's name
func (f *CachingFetcher) Name() string {
	return f.inner.Name()
}

// Fetch returns a cached page for url or fetches and caches it
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*models.Page, error) {
	if page, ok := f.cache.Get(url); ok {
		return page, nil
	}
	page, err := f.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	f.cache.Set(url, page, f.ttl)
	return page, nil
}
