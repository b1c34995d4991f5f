// stats.go: monotonic counters and the JSON stats report
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import "encoding/json"

// stats holds the cache's monotonic counters. All fields are read and
// written under the cache's single lock, so a snapshot taken there is
// always internally consistent (spec §4.7).
type stats struct {
	hits        uint64
	misses      uint64
	sets        uint64
	deletes     uint64
	evictions   uint64
	expirations uint64
}

func (s *stats) reset() {
	*s = stats{}
}

// Report is the JSON-serializable snapshot returned by Cache.Stats.
// Field names match spec §4.1/§6 exactly.
type Report struct {
	Size        int     `json:"size"`
	MaxSize     *int    `json:"max_size"`
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	Sets        uint64  `json:"sets"`
	Deletes     uint64  `json:"deletes"`
	Evictions   uint64  `json:"evictions"`
	Expirations uint64  `json:"expirations"`
	HitRate     float64 `json:"hit_rate"`
}

// JSON encodes the report exactly as spec §4.1 describes ("a textual
// report (JSON object)").
func (r Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
