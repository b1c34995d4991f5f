// config.go: configuration for tagcache
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Config holds construction parameters for a Cache. All fields are
// optional; a zero Config produces an unbounded cache with no default TTL.
type Config struct {
	// MaxSize is the maximum number of live entries. Values <= 0 mean
	// unbounded, per spec: "zero or negative MUST be treated as unset".
	MaxSize int

	// DefaultTTL applies to any Set call that does not supply its own
	// per-entry TTL. Zero means entries never expire unless given one
	// explicitly.
	DefaultTTL time.Duration

	// Logger receives debug/info/warn/error events. Defaults to NoOpLogger.
	Logger Logger

	// TimeProvider supplies the monotonic clock. Defaults to a
	// go-timecache backed clock.
	TimeProvider TimeProvider

	// MetricsCollector receives per-operation telemetry. Defaults to
	// NoOpMetricsCollector (zero overhead).
	MetricsCollector MetricsCollector

	// OnEvict, if set, is called after an entry is evicted for capacity.
	// Called outside the cache's lock with a copy of the value.
	OnEvict func(key string, value []byte)

	// OnExpire, if set, is called after an entry is removed because its
	// TTL lapsed. Called outside the cache's lock with a copy of the value.
	OnExpire func(key string, value []byte)
}

// Validate normalizes Config in place, treating non-positive MaxSize/
// DefaultTTL as "unset" and filling in defaults for unset dependencies.
// New calls this automatically.
func (c *Config) Validate() {
	if c.MaxSize < 0 {
		c.MaxSize = unboundedMaxSize
	}
	if c.DefaultTTL < 0 {
		c.DefaultTTL = unboundedTTL
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
}

// DefaultConfig returns an unbounded cache configuration with no TTL,
// the ambient dependencies filled in.
func DefaultConfig() Config {
	return Config{
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default TimeProvider, backed by go-timecache's
// cached monotonic clock instead of a time.Now() syscall on every call.
type systemTimeProvider struct{}

func (systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
