package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasexample/parser"
)

// documentCache is a session-scoped LRU of parse results with per-entry
// expiry. Results are stored and handed out as private copies because
// annotation mutates the document tree.
type documentCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	sweeper atomic.Bool
}

type cachedDocument struct {
	key       string
	result    *parser.ParseResult
	expiresAt time.Time
}

var specCache = newDocumentCache(cfg.CacheMaxSize)

func newDocumentCache(maxSize int) *documentCache {
	return &documentCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *documentCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	doc := el.Value.(*cachedDocument)
	if time.Now().After(doc.expiresAt) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return doc.result.Copy()
}

func (c *documentCache) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := &cachedDocument{key: key, result: result.Copy(), expiresAt: time.Now().Add(ttl)}
	if el, ok := c.entries[key]; ok {
		el.Value = doc
		c.order.MoveToFront(el)
		return
	}
	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}
	c.entries[key] = c.order.PushFront(doc)
}

// remove must be called with mu held.
func (c *documentCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cachedDocument).key)
}

func (c *documentCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cachedDocument).expiresAt) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only one sweeper runs at a time.
func (c *documentCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeper.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeper.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *documentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

func (c *documentCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
