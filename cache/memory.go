package cache

import (
	"container/list"
	"sync"
	"time"
)

// memoryEntry is the object stored in the eviction list.
type memoryEntry struct {
	key       string
	value     map[string]any
	expiresAt time.Time
}

// Memory is a thread-safe in-memory cache bounded by entry count with
// per-entry TTL. Recency is tracked with a doubly linked list: the front
// holds the most recently used entry, the back is evicted first.
type Memory struct {
	mu        sync.Mutex
	maxSize   int
	ttl       time.Duration
	items     map[string]*list.Element
	evictList *list.List

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// NewMemory creates the default cache. Zero Options fields fall back to
// DefaultMaxSize and DefaultTTL.
func NewMemory(opts Options) *Memory {
	opts = opts.withDefaults()
	return &Memory{
		maxSize:   opts.MaxSize,
		ttl:       opts.TTL,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		now:       time.Now,
	}
}

// Contains implements Cache. An expired entry counts as absent and is
// dropped.
func (c *Memory) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	if c.expired(elem) {
		c.remove(elem)
		return false
	}
	return true
}

// Get implements Cache. A hit moves the entry to the front of the eviction
// list.
func (c *Memory) Get(key string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.expired(elem) {
		c.remove(elem)
		return nil, false
	}
	c.evictList.MoveToFront(elem)
	return elem.Value.(*memoryEntry).value, true
}

// Set implements Cache. Updating an existing key refreshes its value, TTL
// and recency; inserting at capacity evicts the least recently used entry.
func (c *Memory) Set(key string, value map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.evictList.MoveToFront(elem)
		return
	}

	if c.evictList.Len() >= c.maxSize {
		if oldest := c.evictList.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	elem := c.evictList.PushFront(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[key] = elem
}

// Len returns the number of entries, expired ones included.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// expired must be called with the lock held.
func (c *Memory) expired(elem *list.Element) bool {
	return c.now().After(elem.Value.(*memoryEntry).expiresAt)
}

// remove must be called with the lock held.
func (c *Memory) remove(elem *list.Element) {
	c.evictList.Remove(elem)
	delete(c.items, elem.Value.(*memoryEntry).key)
}
