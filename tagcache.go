// tagcache.go: package-level constants
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

const (
	// Version of the tagcache library.
	Version = "v0.1.0"

	// unboundedMaxSize is the internal sentinel meaning "no capacity limit",
	// used when Config.MaxSize is <= 0 (spec: "zero or negative MUST be
	// treated as unset").
	unboundedMaxSize = 0

	// unboundedTTL is the internal sentinel meaning "entries never expire
	// unless given a per-entry TTL".
	unboundedTTL = 0
)
