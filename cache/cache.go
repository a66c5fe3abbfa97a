// Package cache provides a concurrent, byte-bounded LRU cache of immutable
// file contents. Entries are handed out as pinned handles: the bytes behind
// a handle are never freed or mutated while the handle is outstanding, no
// matter how much eviction happens concurrently. Eviction is lazy and only
// runs during Insert.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// numBuckets is the fixed size of the hash index. Power of two so the
// hash can be masked instead of reduced modulo.
const numBuckets = 4096

// entry lives in a hash-bucket chain and in the recency list at the same
// time. pins counts outstanding handles; an entry with pins > 0 may be
// reordered but never evicted.
type entry struct {
	key  string
	data []byte
	size int64

	// recency list, head = most recently used
	prev, next *entry

	// bucket chain
	hashNext *entry

	pins int
}

// Stats holds cumulative cache counters.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Rejections uint64
}

// Cache is a byte-bounded LRU keyed by resource path. A single mutex
// guards the index, the recency list, the byte total and all pin counts.
// Payload bytes are immutable after insert and are read without the lock.
type Cache struct {
	mu         sync.Mutex
	buckets    [numBuckets]*entry
	head, tail *entry
	count      int
	totalBytes int64
	maxBytes   int64
	stats      Stats
}

// New creates a cache holding at most maxBytes of payload data.
func New(maxBytes int64) *Cache {
	return &Cache{maxBytes: maxBytes}
}

func bucketFor(key string) uint64 {
	return xxhash.Sum64String(key) & (numBuckets - 1)
}

// Lookup finds the entry for key. On a hit the entry moves to the front of
// the recency list, gains a pin and a handle is returned. No disk I/O
// happens here.
func (c *Cache) Lookup(key string) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.findLocked(key)
	if e == nil {
		c.stats.Misses++
		return nil, false
	}

	c.touchLocked(e)
	e.pins++
	c.stats.Hits++
	return &Handle{cache: c, entry: e}, true
}

// Insert adds data under key and returns a pinned handle to it. Payloads
// larger than the cache budget are rejected silently with no state change.
// If key is already resident (another loader won the race) the resident
// entry is pinned and data is discarded. Otherwise unpinned entries are
// evicted from the recency tail until data fits or none remain; the new
// entry is admitted even if the total then exceeds the budget, since
// pinned entries cannot be forced out.
func (c *Cache) Insert(key string, data []byte) (*Handle, bool) {
	size := int64(len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if size > c.maxBytes {
		c.stats.Rejections++
		return nil, false
	}

	if e := c.findLocked(key); e != nil {
		c.touchLocked(e)
		e.pins++
		return &Handle{cache: c, entry: e}, true
	}

	c.evictLocked(size)

	e := &entry{key: key, data: data, size: size, pins: 1}
	c.pushFrontLocked(e)

	b := bucketFor(key)
	e.hashNext = c.buckets[b]
	c.buckets[b] = e

	c.count++
	c.totalBytes += size
	return &Handle{cache: c, entry: e}, true
}

// evictLocked drops unpinned entries from the recency tail until need more
// bytes fit under the budget or no unpinned entry remains. Pinned entries
// are skipped in place, never reordered.
func (c *Cache) evictLocked(need int64) {
	e := c.tail
	for e != nil && c.totalBytes+need > c.maxBytes {
		victim := e
		e = e.prev
		if victim.pins > 0 {
			continue
		}
		c.unlinkLocked(victim)
		c.removeFromBucketLocked(victim)
		c.count--
		c.totalBytes -= victim.size
		c.stats.Evictions++
	}
}

func (c *Cache) findLocked(key string) *entry {
	for e := c.buckets[bucketFor(key)]; e != nil; e = e.hashNext {
		if e.key == key {
			return e
		}
	}
	return nil
}

// touchLocked moves e to the head of the recency list.
func (c *Cache) touchLocked(e *entry) {
	if c.head == e {
		return
	}
	c.unlinkLocked(e)
	c.pushFrontLocked(e)
}

func (c *Cache) pushFrontLocked(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) unlinkLocked(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *Cache) removeFromBucketLocked(victim *entry) {
	b := bucketFor(victim.key)
	var prev *entry
	for e := c.buckets[b]; e != nil; e = e.hashNext {
		if e == victim {
			if prev == nil {
				c.buckets[b] = e.hashNext
			} else {
				prev.hashNext = e.hashNext
			}
			victim.hashNext = nil
			return
		}
		prev = e
	}
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// TotalBytes returns the summed payload size of all resident entries.
func (c *Cache) TotalBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalBytes
}

// MaxBytes returns the configured capacity ceiling.
func (c *Cache) MaxBytes() int64 {
	return c.maxBytes
}

// Stats returns a snapshot of the cumulative counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
