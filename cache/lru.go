package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// LRU is an in-process cache with TTL and size-based eviction.
type LRU struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type lruItem struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewLRU creates an LRU holding at most maxSize entries for ttl each.
// A ttl of zero never expires entries.
func NewLRU(maxSize int, ttl time.Duration) *LRU {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	item := elem.Value.(*lruItem)
	if c.ttl > 0 && c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false, nil
	}
	c.lru.MoveToFront(elem)
	return item.data, true, nil
}

func (c *LRU) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*lruItem)
		item.data = value
		item.expiresAt = expiresAt
		c.lru.MoveToFront(elem)
		return nil
	}

	c.items[key] = c.lru.PushFront(&lruItem{key: key, data: value, expiresAt: expiresAt})
	for c.lru.Len() > c.maxSize {
		c.removeElement(c.lru.Back())
	}
	return nil
}

// Len returns the number of entries, expired or not.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *LRU) Close() error { return nil }

func (c *LRU) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	delete(c.items, elem.Value.(*lruItem).key)
}
