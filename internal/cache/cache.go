// internal/cache/cache.go
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/rs/zerolog/log"
)

// Cache stores fetched pages for the lifetime of a run.
type Cache interface {
	// Get returns the page cached under key, if present and not expired.
	Get(key string) (*models.Page, bool)

	// Set stores page under key for ttl, evicting least recently used
	// entries when the size budget is exceeded.
	Set(key string, page *models.Page, ttl time.Duration)

	// Close stops background cleanup.
	Close()
}

type cacheEntry struct {
	Page      *models.Page
	ExpiresAt time.Time
	Key       string
	Size      int64
}

// MemoryCache is an in-memory page cache with LRU eviction
type MemoryCache struct {
	store   map[string]*list.Element
	lruList *list.List
	mu      sync.Mutex
	maxSize int64
	size    int64
	cancel  context.CancelFunc
	hits    uint64
	misses  uint64
}

// NewMemoryCache creates a cache bounded to maxSizeBytes of HTML
func NewMemoryCache(maxSizeBytes int64) *MemoryCache {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 32 * 1024 * 1024
	}

	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemoryCache{
		store:   make(map[string]*list.Element),
		lruList: list.New(),
		maxSize: maxSizeBytes,
		cancel:  cancel,
	}

	go mc.cleanupExpired(ctx, time.Minute)

	return mc
}

// Get retrieves a cached page and marks it most recently used
func (mc *MemoryCache) Get(key string) (*models.Page, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	element, ok := mc.store[key]
	if !ok {
		mc.misses++
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if time.Now().After(entry.ExpiresAt) {
		mc.misses++
		mc.remove(element)
		return nil, false
	}

	mc.lruList.MoveToFront(element)
	mc.hits++
	log.Debug().Str("key", key).Msg("Cache hit")
	return entry.Page, true
}

// Set stores a page with ttl
func (mc *MemoryCache) Set(key string, page *models.Page, ttl time.Duration) {
	if page == nil {
		return
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if element, ok := mc.store[key]; ok {
		mc.remove(element)
	}

	entry := &cacheEntry{
		Page:      page,
		ExpiresAt: time.Now().Add(ttl),
		Key:       key,
		Size:      int64(len(page.HTML)) + 1024,
	}

	for mc.size+entry.Size > mc.maxSize && mc.lruList.Len() > 0 {
		back := mc.lruList.Back()
		log.Debug().Str("key", back.Value.(*cacheEntry).Key).Msg("Evicted from cache (LRU)")
		mc.remove(back)
	}

	mc.store[key] = mc.lruList.PushFront(entry)
	mc.size += entry.Size
}

// Len returns the number of cached pages
func (mc *MemoryCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.lruList.Len()
}

// Stats returns hit and miss counters
func (mc *MemoryCache) Stats() (hits, misses uint64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.hits, mc.misses
}

// Close stops the background cleanup goroutine
func (mc *MemoryCache) Close() {
	mc.cancel()
}

// remove must be called with the lock held
func (mc *MemoryCache) remove(element *list.Element) {
	entry := element.Value.(*cacheEntry)
	mc.lruList.Remove(element)
	delete(mc.store, entry.Key)
	mc.size -= entry.Size
}

func (mc *MemoryCache) cleanupExpired(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			now := time.Now()
			var next *list.Element
			for element := mc.lruList.Front(); element != nil; element = next {
				next = element.Next()
				if now.After(element.Value.(*cacheEntry).ExpiresAt) {
					mc.remove(element)
				}
			}
			mc.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
