// Package tagcache provides a thread-safe, in-memory cache combining
// bounded LRU eviction, per-entry TTL expiration, and tag-based bulk
// invalidation.
//
// # Overview
//
// tagcache is meant to be embedded inside a process as a shared library:
// there is no network protocol, no on-disk state, and no background
// goroutine requirement. Values are opaque []byte; structure and
// serialization are the caller's concern.
//
// # Quick Start
//
//	cache := tagcache.New(tagcache.Config{
//	    MaxSize:    10_000,
//	    DefaultTTL: 5 * time.Minute,
//	})
//	defer cache.Close()
//
//	cache.Set("user:123", []byte("alice"), tagcache.WithTags("user"))
//	value, found := cache.Get("user:123")
//
// # Eviction and expiration
//
// Capacity is enforced at the end of every Set: once the live entry
// count exceeds MaxSize, the coldest entries (by recency order) are
// evicted until size is back at MaxSize. Expiration is lazy: an entry
// is removed the first time an operation observes its expiry timestamp
// has passed. Both paths update the same statistics counters returned
// by Stats().
//
// # Tags
//
// A Set call may attach any number of tags to an entry. InvalidateTag
// removes every entry carrying a given tag in one call, which is the
// only way the tag index is drained outside of normal entry removal.
//
// # Concurrency
//
// All operations are safe for concurrent use. A single mutex guards the
// primary store, recency list, tag index, and statistics as one unit,
// so every public method is linearizable with respect to every other.
//
// # Observability
//
// Stats() returns a JSON-serializable snapshot. Pass a MetricsCollector
// in Config to additionally record per-operation latencies; see the
// otelmetrics subpackage for an OpenTelemetry-backed implementation.
package tagcache
