// hotreload.go: optional dynamic configuration reload via Argus
//
// This is opt-in infrastructure: a Cache built with plain New(Config{})
// never touches a filesystem. A caller that wants operational tuning of
// DefaultTTL/MaxSize without a restart constructs a HotConfig separately,
// grounded on the teacher library's hot-reload.go.
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig watches a configuration file and applies MaxSize/DefaultTTL
// changes to a running Cache without requiring reconstruction. Supports
// JSON, YAML, TOML, HCL, INI, and Properties, per Argus's universal
// watcher.
type HotConfig struct {
	cache   *Cache
	watcher *argus.Watcher
	mu      sync.RWMutex
	maxSize int
	ttl     time.Duration

	// OnReload, if set, is called after each successful reload with the
	// previous and new values. Must be fast and non-blocking.
	OnReload func(oldMaxSize int, oldTTL time.Duration, newMaxSize int, newTTL time.Duration)
}

// HotConfigOptions configures a HotConfig.
type HotConfigOptions struct {
	// ConfigPath is the file to watch. Required.
	ConfigPath string

	// PollInterval is how often to check for changes. Default 1s, floor 100ms.
	PollInterval time.Duration

	OnReload func(oldMaxSize int, oldTTL time.Duration, newMaxSize int, newTTL time.Duration)
}

// NewHotConfig starts watching ConfigPath and applying changes to cache.
//
// Expected configuration keys, under a top-level "cache" section or at the
// document root:
//
//	cache:
//	  max_size: 10000
//	  default_ttl: "5m"
//
// Increasing max_size raises the ceiling immediately. Decreasing it
// triggers synchronous eviction down to the new ceiling. Changing
// default_ttl only affects entries created by Set calls made after the
// reload; it never rewrites the expiry of entries already stored.
func NewHotConfig(cache *Cache, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	hc := &HotConfig{
		cache:    cache,
		OnReload: opts.OnReload,
		maxSize:  cache.maxSize,
		ttl:      time.Duration(cache.defaultTTL),
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argus.Config{
		PollInterval: opts.PollInterval,
	})
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching, if not already running.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// MaxSize returns the most recently applied max size.
func (hc *HotConfig) MaxSize() int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.maxSize
}

// DefaultTTL returns the most recently applied default TTL.
func (hc *HotConfig) DefaultTTL() time.Duration {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.ttl
}

func (hc *HotConfig) handleConfigChange(data map[string]interface{}) {
	section, ok := data["cache"].(map[string]interface{})
	if !ok {
		_, hasMaxSize := data["max_size"]
		_, hasTTL := data["default_ttl"]
		if !hasMaxSize && !hasTTL {
			return
		}
		section = data
	}

	hc.mu.Lock()
	oldMaxSize, oldTTL := hc.maxSize, hc.ttl
	newMaxSize, newTTL := oldMaxSize, oldTTL

	if v, ok := parsePositiveInt(section["max_size"]); ok {
		newMaxSize = v
	}
	if v, ok := parseDuration(section["default_ttl"]); ok {
		newTTL = v
	}
	hc.maxSize, hc.ttl = newMaxSize, newTTL
	hc.mu.Unlock()

	hc.cache.applyHotConfig(newMaxSize, newTTL)

	if hc.OnReload != nil {
		hc.OnReload(oldMaxSize, oldTTL, newMaxSize, newTTL)
	}
}

func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil {
			return d, true
		}
	}
	return 0, false
}
