// race_test.go: concurrency tests for tagcache, run with -race
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import (
	"strconv"
	"sync"
	"testing"
)

func TestRace_ConcurrentSetGetDelete(t *testing.T) {
	c := New(Config{MaxSize: 1000})
	const numGoroutines = 50
	const numOps = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < numOps; i++ {
				key := strconv.Itoa((id*numOps + i) % 100)
				switch i % 3 {
				case 0:
					c.Set(key, []byte(key), WithTags("shard-"+strconv.Itoa(id%5)))
				case 1:
					c.Get(key)
				case 2:
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	stats := c.Stats()
	if stats.Size < 0 || stats.Size > 1000 {
		t.Errorf("cache size corrupted: %d", stats.Size)
	}
}

func TestRace_ConcurrentInvalidateTag(t *testing.T) {
	c := New(Config{MaxSize: 1000})

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(id*200 + i)
				c.Set(key, []byte(key), WithTags("group"))
			}
		}(g)
	}
	wg.Wait()

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.InvalidateTag("group")
	}()
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				c.Get(strconv.Itoa(id * i))
			}
		}(g)
	}
	wg.Wait()
}

func TestRace_ConcurrentStatsDuringMutation(t *testing.T) {
	c := New(Config{MaxSize: 200})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			c.Set(strconv.Itoa(i%50), []byte("v"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			stats := c.Stats()
			if stats.Size < 0 {
				t.Errorf("negative size observed: %d", stats.Size)
			}
		}
	}()
	wg.Wait()
}

func TestRace_ConcurrentGetOrLoadSameKey(t *testing.T) {
	c := New(Config{MaxSize: 10})

	var loadCount int
	var mu sync.Mutex
	loader := func() ([]byte, error) {
		mu.Lock()
		loadCount++
		mu.Unlock()
		return []byte("loaded"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrLoad("shared", loader)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
			}
			if string(value) != "loaded" {
				t.Errorf("GetOrLoad value = %q, want %q", value, "loaded")
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if loadCount != 1 {
		t.Errorf("loader invoked %d times, want exactly 1 under singleflight dedup", loadCount)
	}
}
