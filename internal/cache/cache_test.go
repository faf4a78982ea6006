package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/law-makers/reviewscrape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(0)
	defer mc.Close()

	page := &models.Page{URL: "https://a.example/", HTML: "<p>hi</p>"}
	mc.Set(page.URL, page, time.Minute)

	got, ok := mc.Get(page.URL)
	require.True(t, ok)
	assert.Same(t, page, got)

	_, ok = mc.Get("https://missing.example/")
	assert.False(t, ok)

	hits, misses := mc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache(0)
	defer mc.Close()

	mc.Set("k", &models.Page{}, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := mc.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	// room for two pages of ~1KB HTML plus overhead
	mc := NewMemoryCache(4200)
	defer mc.Close()

	body := strings.Repeat("x", 1000)
	mc.Set("a", &models.Page{HTML: body}, time.Minute)
	mc.Set("b", &models.Page{HTML: body}, time.Minute)

	_, ok := mc.Get("a") // a is now most recent
	require.True(t, ok)

	mc.Set("c", &models.Page{HTML: body}, time.Minute)

	_, ok = mc.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = mc.Get("a")
	assert.True(t, ok)
	_, ok = mc.Get("c")
	assert.True(t, ok)
}

func TestMemoryCache_Replace(t *testing.T) {
	mc := NewMemoryCache(0)
	defer mc.Close()

	mc.Set("k", &models.Page{Title: "old"}, time.Minute)
	mc.Set("k", &models.Page{Title: "new"}, time.Minute)

	got, ok := mc.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 1, mc.Len())
}
