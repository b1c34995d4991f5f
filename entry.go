// entry.go: the per-key record held by the primary store
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import "container/list"

// entry is one live record: a value plus the metadata needed to keep the
// recency order and tag index consistent with the primary store.
type entry struct {
	key string

	value []byte

	insertedAt int64 // nanoseconds, from Config.TimeProvider
	expiresAt  int64 // nanoseconds; 0 means "never expires"

	tags map[string]struct{}

	// node is this entry's handle into the cache's recency list. The
	// element's Value is always the key, so list traversal can map back
	// to the primary store in O(1).
	node *list.Element
}

func (e *entry) hasExpired(now int64) bool {
	return e.expiresAt != 0 && now >= e.expiresAt
}

// tagNames returns an independent copy of tag names, used whenever a
// caller-facing slice of tags needs to leave the lock.
func (e *entry) tagNames() []string {
	if len(e.tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.tags))
	for t := range e.tags {
		names = append(names, t)
	}
	return names
}

// cloneValue returns an independent copy of the stored value so callers
// never receive a slice backed by cache-owned memory.
func (e *entry) cloneValue() []byte {
	if e.value == nil {
		return nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out
}
