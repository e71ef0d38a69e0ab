package ecdocs

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = sql.ErrNoRows

// PageCache is an in-memory cache of the ordered page list with TTL.
type PageCache struct {
	mu      sync.RWMutex
	pages   []Page
	byRoute map[string]int
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.byRoute != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.byRoute = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	byRoute := make(map[string]int, len(pages))
	for i, p := range pages {
		byRoute[p.Route] = i
	}
	c.pages = pages
	c.byRoute = byRoute
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached pages after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded() ([]Page, map[string]int, error) {
	c.mu.RLock()
	if c.valid() {
		pages, byRoute := c.pages, c.byRoute
		c.mu.RUnlock()
		return pages, byRoute, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.pages, c.byRoute, nil
}

// ListPages returns all pages in sidebar order.
func (c *PageCache) ListPages() ([]Page, error) {
	pages, _, err := c.ensureLoaded()
	return pages, err
}

// GetPage returns the page at route.
func (c *PageCache) GetPage(route string) (Page, error) {
	pages, byRoute, err := c.ensureLoaded()
	if err != nil {
		return Page{}, err
	}
	i, ok := byRoute[route]
	if !ok {
		return Page{}, ErrNotFound
	}
	return pages[i], nil
}

// Neighbours returns the pages before and after route in sidebar order.
// Either may be nil.
func (c *PageCache) Neighbours(route string) (prev, next *Page, err error) {
	pages, byRoute, err := c.ensureLoaded()
	if err != nil {
		return nil, nil, err
	}
	i, ok := byRoute[route]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if i > 0 {
		p := pages[i-1]
		prev = &p
	}
	if i+1 < len(pages) {
		n := pages[i+1]
		next = &n
	}
	return prev, next, nil
}
