package cache

// Handle is a pinned view of one cache entry. The bytes it exposes remain
// valid for reads until Release is called, regardless of concurrent Insert
// and eviction activity. Handles are not safe for concurrent use by
// multiple goroutines; each consumer takes its own via Lookup or Insert.
type Handle struct {
	cache    *Cache
	entry    *entry
	released bool
}

// Bytes returns the pinned payload. The slice must not be mutated and must
// not be used after Release.
func (h *Handle) Bytes() []byte {
	return h.entry.data
}

// Size returns the payload length in bytes.
func (h *Handle) Size() int64 {
	return h.entry.size
}

// Key returns the resource path the entry is cached under.
func (h *Handle) Key() string {
	return h.entry.key
}

// Release drops the pin. The entry becomes evictable again once all
// handles on it are released. Calling Release more than once, or on a nil
// handle, is a no-op.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.cache.mu.Lock()
	defer h.cache.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	h.entry.pins--
}
