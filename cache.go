package staticblog

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/staticblog/fetch"
	"github.com/eringen/staticblog/postindex"
)

// IndexCache is an in-memory copy of the post index with a TTL, used by the
// server's feed and sitemap.
type IndexCache struct {
	mu      sync.RWMutex
	posts   []postindex.Summary
	fetched time.Time
	ttl     time.Duration
	fetcher fetch.Fetcher
	path    string
}

// NewIndexCache creates an IndexCache reading path through f.
func NewIndexCache(f fetch.Fetcher, path string, ttl time.Duration) *IndexCache {
	return &IndexCache{fetcher: f, path: path, ttl: ttl}
}

func (c *IndexCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// Posts returns the cached index, reloading it once the TTL has passed.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *IndexCache) Posts(ctx context.Context) ([]postindex.Summary, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := postindex.Load(ctx, c.fetcher, c.path)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []postindex.Summary{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}
