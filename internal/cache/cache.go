// Package cache implements the bounded, time-expiring document store
// that sits between the HTTP handlers and the renderer.
//
// Entries live for a fixed TTL from insertion and are evicted least
// recently used once capacity is exceeded. There is no proactive
// invalidation: staleness inside the TTL window is an accepted
// trade-off. Concurrent misses for the same key are not deduplicated;
// each caller fetches and renders independently and the last Set wins.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/juneandco/third-audience/internal/render"
)

// Key scheme: "<kind>:<handle>" for entity documents and a fixed literal
// for each aggregate document.
const (
	KeyDiscovery       = "llms.txt"
	KeySitemapMarkdown = "sitemap.md"
	KeySitemapXML      = "sitemap.xml"
	KeyProductIndex    = "products-list"
	KeyCollectionIndex = "collections-list"
)

// EntityKey builds the cache key for a single-entity document.
func EntityKey(kind, handle string) string {
	return kind + ":" + handle
}

type entry struct {
	key       string
	doc       render.Document
	expiresAt time.Time
}

// Cache is a TTL-bounded LRU cache of rendered documents. Safe for
// concurrent use; all mutations are atomic key-level operations.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// New creates a cache holding at most capacity entries, each expiring
// ttl after insertion. Non-positive capacity or ttl fall back to the
// defaults (500 entries, 5 minutes).
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 500
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached document for key. An entry past its TTL is
// treated as absent and removed lazily. A hit refreshes recency.
func (c *Cache) Get(key string) (render.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return render.Document{}, false
	}
	en := el.Value.(*entry)
	if c.now().After(en.expiresAt) {
		c.order.Remove(el)
		delete(c.entries, key)
		return render.Document{}, false
	}
	c.order.MoveToFront(el)
	return en.doc, true
}

// Set stores a document under key, resetting its TTL. When the cache is
// over capacity the least recently used entry is evicted.
func (c *Cache) Set(key string, doc render.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.entries[key]; ok {
		en := el.Value.(*entry)
		en.doc = doc
		en.expiresAt = expires
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{key: key, doc: doc, expiresAt: expires})
	c.entries[key] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
