// loader.go: GetOrLoad cache-aside convenience with singleflight dedup
//
// Grounded on the teacher library's loading.go: concurrent callers missing
// the same key share a single loader invocation instead of stampeding
// whatever loader fetches. This is a synchronous call from the caller's own
// goroutine, not a callback or pub/sub mechanism.
//
// SPDX-License-Identifier: MPL-2.0

package tagcache

import "sync"

// inflightCall tracks one in-progress loader invocation shared by every
// concurrent GetOrLoad caller for the same key.
type inflightCall struct {
	wg    sync.WaitGroup
	value []byte
	err   error
}

// GetOrLoad returns the cached value for key, or calls loader to produce
// one on a miss. If multiple goroutines call GetOrLoad for the same
// missing key concurrently, only one loader executes; the others wait on
// its result. A successful load is Set with the same options a direct Set
// call would take (TTL, tags). Loader errors are not cached. A panicking
// loader is recovered and reported as ErrCodePanicRecovered.
func (c *Cache) GetOrLoad(key string, loader func() ([]byte, error), opts ...SetOption) ([]byte, error) {
	if key == "" {
		return nil, NewErrEmptyKey("GetOrLoad")
	}
	if value, found := c.Get(key); found {
		return value, nil
	}
	if loader == nil {
		return nil, NewErrInvalidLoader(key)
	}

	c.inflightMu.Lock()
	if c.inflight == nil {
		c.inflight = make(map[string]*inflightCall)
	}
	if existing, ok := c.inflight[key]; ok {
		c.inflightMu.Unlock()
		existing.wg.Wait()
		return existing.value, existing.err
	}

	// A previous loader may have stored the value and left the inflight
	// map between the Get above and acquiring inflightMu.
	c.mu.Lock()
	if e := c.store[key]; e != nil && !e.hasExpired(c.timeProvider.Now()) {
		value := e.cloneValue()
		c.mu.Unlock()
		c.inflightMu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	call := &inflightCall{}
	call.wg.Add(1)
	c.inflight[key] = call
	c.inflightMu.Unlock()

	call.value, call.err = c.runLoader(key, loader, opts)

	c.inflightMu.Lock()
	delete(c.inflight, key)
	c.inflightMu.Unlock()

	call.wg.Done()
	return call.value, call.err
}

func (c *Cache) runLoader(key string, loader func() ([]byte, error), opts []SetOption) (value []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewErrPanicRecovered(key, r)
		}
	}()

	value, err = loader()
	if err != nil {
		return nil, NewErrLoaderFailed(key, err)
	}

	c.Set(key, value, opts...)
	return value, nil
}
