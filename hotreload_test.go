// hotreload_test.go: tests for dynamic configuration reload
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewHotConfig(t *testing.T) {
	cache := New(DefaultConfig())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	initial := `cache:
  max_size: 1000
  default_ttl: 10m
`
	if err := os.WriteFile(configPath, []byte(initial), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	hc, err := NewHotConfig(cache, HotConfigOptions{
		ConfigPath:   configPath,
		PollInterval: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()

	if hc.cache != cache {
		t.Error("HotConfig cache reference mismatch")
	}
	if hc.watcher == nil {
		t.Error("expected non-nil watcher")
	}
}

func TestNewHotConfig_EmptyPath(t *testing.T) {
	cache := New(DefaultConfig())

	_, err := NewHotConfig(cache, HotConfigOptions{ConfigPath: ""})
	if err == nil {
		t.Error("expected error for empty config path")
	}
}

func TestNewHotConfig_PollIntervalFloor(t *testing.T) {
	cache := New(DefaultConfig())
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")
	if err := os.WriteFile(configPath, []byte("cache:\n  max_size: 10\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	hc, err := NewHotConfig(cache, HotConfigOptions{
		ConfigPath:   configPath,
		PollInterval: time.Millisecond, // below the floor
	})
	if err != nil {
		t.Fatalf("NewHotConfig failed: %v", err)
	}
	defer func() { _ = hc.Stop() }()
}

func TestHotConfig_HandleConfigChange_AppliesMaxSizeAndTTL(t *testing.T) {
	cache := New(Config{MaxSize: 5})
	for i := 0; i < 5; i++ {
		cache.Set(string(rune('a'+i)), []byte("v"))
	}

	hc := &HotConfig{cache: cache, maxSize: 5, ttl: 0}
	hc.handleConfigChange(map[string]interface{}{
		"cache": map[string]interface{}{
			"max_size":    float64(2),
			"default_ttl": "1h",
		},
	})

	if hc.MaxSize() != 2 {
		t.Errorf("MaxSize() = %d, want 2", hc.MaxSize())
	}
	if hc.DefaultTTL() != time.Hour {
		t.Errorf("DefaultTTL() = %v, want 1h", hc.DefaultTTL())
	}
	if cache.Stats().Size != 2 {
		t.Errorf("cache size = %d, want evicted down to 2", cache.Stats().Size)
	}
}

func TestHotConfig_HandleConfigChange_FiresOnReload(t *testing.T) {
	cache := New(Config{MaxSize: 10})
	var calledWith [4]int64

	hc := &HotConfig{
		cache:   cache,
		maxSize: 10,
		OnReload: func(oldMaxSize int, oldTTL time.Duration, newMaxSize int, newTTL time.Duration) {
			calledWith = [4]int64{int64(oldMaxSize), int64(oldTTL), int64(newMaxSize), int64(newTTL)}
		},
	}
	hc.handleConfigChange(map[string]interface{}{
		"cache": map[string]interface{}{"max_size": float64(20)},
	})

	if calledWith[0] != 10 || calledWith[2] != 20 {
		t.Errorf("OnReload args = %v, want old=10 new=20", calledWith)
	}
}

func TestHotConfig_HandleConfigChange_IgnoresUnrelatedKeys(t *testing.T) {
	cache := New(Config{MaxSize: 10})
	hc := &HotConfig{cache: cache, maxSize: 10}

	hc.handleConfigChange(map[string]interface{}{"unrelated": "value"})

	if hc.MaxSize() != 10 {
		t.Errorf("MaxSize() = %d, want unchanged 10", hc.MaxSize())
	}
}
