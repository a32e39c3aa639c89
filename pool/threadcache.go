// File: pool/threadcache.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-OS-thread buffer caches for the fast pool's first tier.
//
// Caches are keyed by thread identity. Each cache carries its own mutex:
// on the owning thread it is always uncontended, and it keeps the cache
// safe when the scheduler migrates a goroutine between the identity read
// and the cache operation. Caches of exited threads keep their (zeroed)
// buffers until FlushThreadCache reclaims them; heavy thread churn without
// flushing gradually trades pooled capacity for fresh allocations.

package pool

import (
	"sync"

	"github.com/momentics/secbuf/buffer"
	"github.com/momentics/secbuf/internal/threadid"
)

// threadCacheCapacity bounds each per-thread cache.
const threadCacheCapacity = 16

type threadCache struct {
	mu   sync.Mutex
	bufs []*buffer.Buffer
}

// pop returns a cached buffer or nil.
func (tc *threadCache) pop() *buffer.Buffer {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	n := len(tc.bufs)
	if n == 0 {
		return nil
	}
	buf := tc.bufs[n-1]
	tc.bufs[n-1] = nil
	tc.bufs = tc.bufs[:n-1]
	return buf
}

// push stores a buffer, reporting false when the cache is full.
func (tc *threadCache) push(buf *buffer.Buffer) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if len(tc.bufs) >= threadCacheCapacity {
		return false
	}
	tc.bufs = append(tc.bufs, buf)
	return true
}

// drain empties the cache and returns its contents.
func (tc *threadCache) drain() []*buffer.Buffer {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	out := tc.bufs
	tc.bufs = nil
	return out
}

// threadCaches maps thread identity to its cache.
type threadCaches struct {
	m sync.Map // uint64 -> *threadCache
}

// current returns the cache for the calling thread, creating it on first
// use.
func (t *threadCaches) current() *threadCache {
	id := threadid.Current()
	if v, ok := t.m.Load(id); ok {
		return v.(*threadCache)
	}
	tc := &threadCache{bufs: make([]*buffer.Buffer, 0, threadCacheCapacity)}
	actual, _ := t.m.LoadOrStore(id, tc)
	return actual.(*threadCache)
}

// take removes and returns the calling thread's cache, or nil if the thread
// never cached anything.
func (t *threadCaches) take() *threadCache {
	id := threadid.Current()
	v, ok := t.m.LoadAndDelete(id)
	if !ok {
		return nil
	}
	return v.(*threadCache)
}
