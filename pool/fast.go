// File: pool/fast.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free buffer pool with per-thread caching. Acquisition cascades
// through three tiers of increasing cost:
//
//  1. the calling thread's private cache,
//  2. the global lock-free queue,
//  3. a fresh allocation.
//
// Every buffer is burned (securely zeroed) before it becomes reachable
// from either tier, so a future acquirer can never observe a previous
// user's bytes.
//
// The global idle count is a separate atomic maintained around each queue
// push/pop; it is not updated atomically with the queue, so Available and
// the Warm target are liveness hints that can transiently drift. The
// queue's own capacity (next power of two at or above MaxPoolSize) is the
// hard bound.

package pool

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/secbuf/api"
	"github.com/momentics/secbuf/buffer"
	"github.com/momentics/secbuf/internal/concurrency"
)

// Ensure compile-time interface compliance.
var _ api.StatsSource = (*FastPool)(nil)

// FastPool is the lock-free, thread-cached buffer pool.
type FastPool struct {
	global api.Queue[*buffer.Buffer]
	idle   atomic.Int64 // approximate global idle count
	config PoolConfig
	caches threadCaches

	allocated atomic.Uint64
	acquired  atomic.Uint64
	returned  atomic.Uint64
	cacheHits atomic.Uint64
}

// NewFastPool creates a pool and pre-warms the global queue with
// MinPoolSize buffers.
func NewFastPool(config PoolConfig) *FastPool {
	config = config.normalized()
	p := &FastPool{
		global: concurrency.NewQueue[*buffer.Buffer](config.MaxPoolSize),
		config: config,
	}
	for i := 0; i < config.MinPoolSize; i++ {
		p.pushGlobal(buffer.New(config.BufferSize))
	}
	return p
}

// Acquire runs the three-tier cascade. It never fails and never blocks.
//
// The returned guard must be released with Release (or Leak/DropNow); a
// finalizer backstop releases abandoned guards, but relying on it delays
// reclamation non-deterministically.
func (p *FastPool) Acquire() *FastPooledBuffer {
	p.acquired.Add(1)

	// Tier 1: this thread's private cache.
	if buf := p.caches.current().pop(); buf != nil {
		p.cacheHits.Add(1)
		return p.newGuard(buf)
	}

	// Tier 2: global lock-free queue.
	if buf, ok := p.global.Pop(); ok {
		p.idle.Add(-1)
		return p.newGuard(buf)
	}

	// Tier 3: fresh allocation.
	p.allocated.Add(1)
	return p.newGuard(buffer.New(p.config.BufferSize))
}

func (p *FastPool) newGuard(buf *buffer.Buffer) *FastPooledBuffer {
	pb := &FastPooledBuffer{Buffer: buf, pool: p}
	runtime.SetFinalizer(pb, (*FastPooledBuffer).Release)
	return pb
}

// Available returns the approximate number of idle buffers in the global
// queue. Thread-local caches are not included.
func (p *FastPool) Available() int {
	n := p.idle.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Stats returns an eventually-consistent snapshot of the pool counters.
func (p *FastPool) Stats() FastPoolStats {
	return FastPoolStats{
		Available: p.Available(),
		Allocated: p.allocated.Load(),
		Acquired:  p.acquired.Load(),
		Returned:  p.returned.Load(),
		CacheHits: p.cacheHits.Load(),
	}
}

// StatsMap implements api.StatsSource for the control registry.
func (p *FastPool) StatsMap() map[string]any {
	s := p.Stats()
	return map[string]any{
		"available":  s.Available,
		"allocated":  s.Allocated,
		"acquired":   s.Acquired,
		"returned":   s.Returned,
		"cache_hits": s.CacheHits,
	}
}

// Warm pushes fresh buffers until the global queue holds approximately
// min(target, MaxPoolSize) idle buffers. Best-effort: concurrent traffic
// can make the result over- or undershoot by a small constant.
func (p *FastPool) Warm(target int) {
	if target > p.config.MaxPoolSize {
		target = p.config.MaxPoolSize
	}
	for n := p.Available(); n < target; n++ {
		if !p.pushGlobal(buffer.New(p.config.BufferSize)) {
			return
		}
	}
}

// Clear drains the global queue. Thread-local caches are unaffected; use
// FlushThreadCache from each worker to reclaim those.
func (p *FastPool) Clear() {
	for {
		if _, ok := p.global.Pop(); !ok {
			return
		}
		p.idle.Add(-1)
	}
}

// FlushThreadCache pushes the calling thread's cached buffers into the
// global queue where the cap permits and discards the rest (all already
// zeroed), then unregisters the cache. Call it before a long-lived worker
// exits; otherwise its cached buffers are lost to the pool.
func (p *FastPool) FlushThreadCache() {
	tc := p.caches.take()
	if tc == nil {
		return
	}
	for _, buf := range tc.drain() {
		p.pushGlobal(buf)
	}
}

// pushGlobal inserts an already-zeroed buffer into the global queue,
// honoring the approximate MaxPoolSize bound. Reports false when the
// buffer was discarded instead.
func (p *FastPool) pushGlobal(buf *buffer.Buffer) bool {
	if int(p.idle.Load()) >= p.config.MaxPoolSize {
		return false
	}
	if !p.global.Push(buf) {
		return false
	}
	p.idle.Add(1)
	return true
}

// release burns the buffer, then walks the return tiers: thread cache,
// global queue, discard. The burn completes before the buffer becomes
// reachable from any tier.
func (p *FastPool) release(buf *buffer.Buffer) {
	buf.Burn()
	p.returned.Add(1)

	if p.caches.current().push(buf) {
		return
	}
	p.pushGlobal(buf)
}

// FastPooledBuffer is a buffer borrowed from a FastPool. The embedded
// *buffer.Buffer exposes the full Buffer API directly on the guard. After
// Release, Leak or DropNow the guard is detached and must not be used.
type FastPooledBuffer struct {
	*buffer.Buffer
	pool *FastPool
}

// Release burns the buffer and returns it to the pool tiers (or discards
// it when both are full). Idempotent.
func (pb *FastPooledBuffer) Release() {
	if pb.Buffer == nil {
		return
	}
	runtime.SetFinalizer(pb, nil)
	buf := pb.Buffer
	pb.Buffer = nil
	pb.pool.release(buf)
}

// Leak detaches the buffer from pool management. The caller owns it and is
// responsible for calling Burn when done.
func (pb *FastPooledBuffer) Leak() *buffer.Buffer {
	if pb.Buffer == nil {
		return nil
	}
	runtime.SetFinalizer(pb, nil)
	buf := pb.Buffer
	pb.Buffer = nil
	return buf
}

// DropNow burns and discards the buffer immediately, bypassing pool return.
func (pb *FastPooledBuffer) DropNow() {
	if pb.Buffer == nil {
		return
	}
	runtime.SetFinalizer(pb, nil)
	pb.Buffer.Burn()
	pb.Buffer = nil
}
