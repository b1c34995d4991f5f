// expiration.go: lazy TTL expiration
//
// An entry is removed the first time an operation observes
// now >= expiresAt. There is no background sweep: an expired entry
// occupies capacity until it is accessed or swept by Keys, which is the
// documented lazy-expiration behavior (spec §4.5).
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

// expireIfStaleLocked removes key from the cache if it exists and has
// expired by now, counting an expiration, and returns the removed entry
// so the caller can fire OnExpire after releasing c.mu (callbacks must
// never run while the lock is held). Returns nil if key is absent or not
// stale. Caller must hold c.mu. Used by Set to satisfy spec §4.1 step 1
// before an overwrite is applied.
func (c *Cache) expireIfStaleLocked(key string, now int64) *entry {
	e := c.store[key]
	if e == nil || !e.hasExpired(now) {
		return nil
	}
	c.removeLocked(e)
	c.stats.expirations++
	return e
}
