// cache.go: core LRU+TTL+tag cache implementation
//
// The engine maintains three mutually consistent structures under a single
// coordinating mutex: a primary map, a container/list recency order (front
// = hot, back = cold), and a tag index (tag -> set of keys). Every public
// method acquires the lock, does its work including lazy expiration of the
// touched key(s), and releases before returning.
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a thread-safe, in-memory key-value store with bounded LRU
// eviction, per-entry TTL expiration, and tag-based bulk invalidation.
type Cache struct {
	mu sync.Mutex

	maxSize      int // 0 = unbounded
	defaultTTL   int64
	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsCollector
	onEvict      func(key string, value []byte)
	onExpire     func(key string, value []byte)

	store    map[string]*entry
	recency  *list.List // element.Value is the key (string)
	tagIndex map[string]map[string]struct{}

	stats stats

	// inflight backs GetOrLoad's singleflight deduplication. Guarded by
	// its own mutex, separate from mu, since a loader call must not hold
	// the cache's main lock while it runs arbitrary caller code.
	inflightMu sync.Mutex
	inflight   map[string]*inflightCall
}

// New creates a Cache from the given configuration, applying Validate and
// filling in ambient defaults (NoOpLogger, system TimeProvider,
// NoOpMetricsCollector) for anything left unset.
func New(cfg Config) *Cache {
	cfg.Validate()

	return &Cache{
		maxSize:      cfg.MaxSize,
		defaultTTL:   int64(cfg.DefaultTTL),
		timeProvider: cfg.TimeProvider,
		logger:       cfg.Logger,
		metrics:      cfg.MetricsCollector,
		onEvict:      cfg.OnEvict,
		onExpire:     cfg.OnExpire,
		store:        make(map[string]*entry),
		recency:      list.New(),
		tagIndex:     make(map[string]map[string]struct{}),
	}
}

func (c *Cache) logEviction(e *entry) {
	c.logger.Debug("evicted entry", "key", e.key, "reason", "capacity")
}

func (c *Cache) logExpiration(e *entry) {
	c.logger.Debug("expired entry", "key", e.key, "reason", "ttl")
}

// SetOption customizes a single Set call.
type SetOption func(*setOptions)

type setOptions struct {
	ttl    time.Duration
	hasTTL bool
	tags   []string
}

// WithTTL gives this entry a per-entry TTL, overriding Config.DefaultTTL.
// A TTL of zero means "already expired on next access" (spec semantics);
// negative TTLs are rejected by Set.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
		o.hasTTL = true
	}
}

// WithTags attaches tags to this entry, replacing any previous tag set on
// overwrite. Duplicate tags collapse; empty tag strings make Set fail.
func WithTags(tags ...string) SetOption {
	return func(o *setOptions) {
		o.tags = tags
	}
}

// Set stores key/value, returning true on success. It returns false and
// leaves state unchanged only on invalid input: empty key, an empty tag
// string, or a negative TTL.
func (c *Cache) Set(key string, value []byte, opts ...SetOption) bool {
	if key == "" {
		return false
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasTTL && o.ttl < 0 {
		return false
	}
	tagSet, ok := normalizeTags(o.tags)
	if !ok {
		return false
	}

	start := c.timeProvider.Now()

	c.mu.Lock()
	staleExpired := c.expireIfStaleLocked(key, start)

	if old := c.store[key]; old != nil {
		c.detachLocked(old)
	}

	var expiresAt int64
	switch {
	case o.hasTTL:
		expiresAt = start + int64(o.ttl)
	case c.defaultTTL > 0:
		expiresAt = start + c.defaultTTL
	}

	e := &entry{
		key:        key,
		value:      cloneBytes(value),
		insertedAt: start,
		expiresAt:  expiresAt,
		tags:       tagSet,
	}
	e.node = c.recency.PushFront(key)
	c.store[key] = e
	c.addTagsLocked(key, tagSet)

	evicted := c.evictToCapacityLocked()
	c.stats.sets++
	c.mu.Unlock()

	c.metrics.RecordSet(c.timeProvider.Now() - start)
	c.fireExpired(staleExpired)
	c.fireEvicted(evicted)
	return true
}

// Get returns the value for key and true, or nil and false if the key is
// absent or has expired. A successful Get moves the key to the hot end of
// the recency order.
func (c *Cache) Get(key string) ([]byte, bool) {
	start := c.timeProvider.Now()

	c.mu.Lock()
	e := c.store[key]
	if e == nil {
		c.stats.misses++
		c.mu.Unlock()
		c.metrics.RecordGet(c.timeProvider.Now()-start, false)
		return nil, false
	}

	if e.hasExpired(start) {
		c.removeLocked(e)
		c.stats.expirations++
		c.stats.misses++
		c.mu.Unlock()
		c.metrics.RecordGet(c.timeProvider.Now()-start, false)
		c.fireExpired(e)
		return nil, false
	}

	c.recency.MoveToFront(e.node)
	c.stats.hits++
	value := e.cloneValue()
	c.mu.Unlock()

	c.metrics.RecordGet(c.timeProvider.Now()-start, true)
	return value, true
}

// Delete removes key and returns true if it was live. An expired-but-
// unswept key is treated as absent: it is removed and counted as an
// expiration, and Delete returns false for it (spec §9 open question,
// resolved for consistency with Get).
func (c *Cache) Delete(key string) bool {
	start := c.timeProvider.Now()

	c.mu.Lock()
	e := c.store[key]
	if e == nil {
		c.mu.Unlock()
		return false
	}

	if e.hasExpired(start) {
		c.removeLocked(e)
		c.stats.expirations++
		c.mu.Unlock()
		c.fireExpired(e)
		return false
	}

	c.removeLocked(e)
	c.stats.deletes++
	c.mu.Unlock()

	c.metrics.RecordDelete(c.timeProvider.Now() - start)
	return true
}

// TagsOf returns the tags attached to key, or (nil, false) if key is
// absent or has expired. The returned slice is a snapshot; mutating it
// has no effect on the cache.
func (c *Cache) TagsOf(key string) ([]string, bool) {
	start := c.timeProvider.Now()

	c.mu.Lock()
	e := c.store[key]
	if e == nil || e.hasExpired(start) {
		c.mu.Unlock()
		return nil, false
	}
	tags := e.tagNames()
	c.mu.Unlock()

	return tags, true
}

// Keys returns a snapshot of all live keys. Order is unspecified. Any
// entries discovered to be expired during the scan are swept and counted
// as expirations, per spec §4.1.
func (c *Cache) Keys() []string {
	start := c.timeProvider.Now()

	c.mu.Lock()
	keys := make([]string, 0, len(c.store))
	var expired []*entry
	for _, e := range c.store {
		if e.hasExpired(start) {
			expired = append(expired, e)
			continue
		}
		keys = append(keys, e.key)
	}
	for _, e := range expired {
		c.removeLocked(e)
	}
	c.stats.expirations += uint64(len(expired))
	c.mu.Unlock()

	for _, e := range expired {
		c.fireExpired(e)
	}
	return keys
}

// InvalidateTag removes every entry carrying tag and returns how many were
// removed. Each removal counts as a delete.
func (c *Cache) InvalidateTag(tag string) int {
	if tag == "" {
		return 0
	}

	c.mu.Lock()
	bucket := c.tagIndex[tag]
	if len(bucket) == 0 {
		c.mu.Unlock()
		return 0
	}

	removed := make([]*entry, 0, len(bucket))
	for key := range bucket {
		if e := c.store[key]; e != nil {
			removed = append(removed, e)
		}
	}
	for _, e := range removed {
		c.removeLocked(e)
	}
	c.stats.deletes += uint64(len(removed))
	c.mu.Unlock()

	c.metrics.RecordInvalidateTag(tag, len(removed))
	return len(removed)
}

// Flush removes every entry and resets all statistics counters to zero,
// returning the number of entries removed. That count includes expired
// entries that had not yet been swept.
func (c *Cache) Flush() int {
	c.mu.Lock()
	count := len(c.store)
	c.store = make(map[string]*entry)
	c.recency = list.New()
	c.tagIndex = make(map[string]map[string]struct{})
	c.stats.reset()
	c.mu.Unlock()
	return count
}

// Stats returns a consistent snapshot of the cache's counters and size.
func (c *Cache) Stats() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	var maxSize *int
	if c.maxSize > 0 {
		m := c.maxSize
		maxSize = &m
	}

	return Report{
		Size:        len(c.store),
		MaxSize:     maxSize,
		Hits:        c.stats.hits,
		Misses:      c.stats.misses,
		Sets:        c.stats.sets,
		Deletes:     c.stats.deletes,
		Evictions:   c.stats.evictions,
		Expirations: c.stats.expirations,
		HitRate:     hitRate(c.stats.hits, c.stats.misses),
	}
}

// Close releases cache resources. The base Cache holds none, so Close is
// equivalent to Flush; it exists to satisfy lifecycle-managed callers and
// mirrors the teacher library's Close/Clear pairing.
func (c *Cache) Close() error {
	c.Flush()
	return nil
}

// applyHotConfig updates maxSize/defaultTTL for future operations. A
// capacity decrease evicts down to the new ceiling synchronously; a TTL
// change never rewrites entries already stored. Used by HotConfig.
func (c *Cache) applyHotConfig(maxSize int, ttl time.Duration) {
	c.mu.Lock()
	c.maxSize = maxSize
	c.defaultTTL = int64(ttl)
	evicted := c.evictToCapacityLocked()
	c.mu.Unlock()

	c.fireEvicted(evicted)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// normalizeTags collapses duplicates and rejects empty tag strings,
// returning ok=false (leaving the caller's state untouched) on any
// malformed tag.
func normalizeTags(tags []string) (map[string]struct{}, bool) {
	if len(tags) == 0 {
		return nil, true
	}
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			return nil, false
		}
		set[t] = struct{}{}
	}
	return set, true
}

func (c *Cache) fireEvicted(evicted []*entry) {
	for _, e := range evicted {
		c.logEviction(e)
		c.metrics.RecordEviction()
		if c.onEvict != nil {
			c.onEvict(e.key, e.value)
		}
	}
}

func (c *Cache) fireExpired(e *entry) {
	if e == nil {
		return
	}
	c.logExpiration(e)
	c.metrics.RecordExpiration()
	if c.onExpire != nil {
		c.onExpire(e.key, e.value)
	}
}
