// File: pool/standard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-based buffer pool. One lock covers the idle FIFO and the counters,
// held only for the pop/push and counter update, never across caller code.
//
// Every buffer is burned (securely zeroed) before it is reinserted into the
// idle list, so the idle list only ever holds fully zeroed buffers and a
// discarded buffer carries no sensitive bytes.

package pool

import (
	"runtime"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/secbuf/api"
	"github.com/momentics/secbuf/buffer"
)

// Ensure compile-time interface compliance.
var _ api.StatsSource = (*Pool)(nil)

// Pool is the standard thread-safe buffer pool. Simple and reliable; for
// high-contention acquisition paths prefer FastPool.
type Pool struct {
	mu             sync.Mutex
	idle           *queue.Queue // of *buffer.Buffer, all zeroed
	config         PoolConfig
	totalAllocated uint64
	totalAcquired  uint64
	totalReturned  uint64
}

// NewPool creates a pool and pre-warms it with MinPoolSize buffers.
func NewPool(config PoolConfig) *Pool {
	config = config.normalized()
	p := &Pool{
		idle:   queue.New(),
		config: config,
	}
	for i := 0; i < config.MinPoolSize; i++ {
		p.idle.Add(buffer.New(config.BufferSize))
	}
	return p
}

// Acquire pops an idle buffer or allocates a fresh one of the configured
// size. It never fails and never blocks beyond the pool mutex.
//
// The returned guard must be released with Release (or Leak/DropNow); a
// finalizer backstop releases abandoned guards, but relying on it delays
// reclamation non-deterministically.
func (p *Pool) Acquire() *PooledBuffer {
	p.mu.Lock()
	p.totalAcquired++
	var buf *buffer.Buffer
	if p.idle.Length() > 0 {
		buf = p.idle.Remove().(*buffer.Buffer)
	} else {
		p.totalAllocated++
	}
	p.mu.Unlock()

	if buf == nil {
		buf = buffer.New(p.config.BufferSize)
	}
	pb := &PooledBuffer{Buffer: buf, pool: p}
	runtime.SetFinalizer(pb, (*PooledBuffer).Release)
	return pb
}

// Available returns the number of idle buffers.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idle.Length()
}

// Stats returns a consistent snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Available:      p.idle.Length(),
		TotalAllocated: p.totalAllocated,
		TotalAcquired:  p.totalAcquired,
		TotalReturned:  p.totalReturned,
		BufferSize:     p.config.BufferSize,
		MaxPoolSize:    p.config.MaxPoolSize,
	}
}

// StatsMap implements api.StatsSource for the control registry.
func (p *Pool) StatsMap() map[string]any {
	s := p.Stats()
	return map[string]any{
		"available":       s.Available,
		"total_allocated": s.TotalAllocated,
		"total_acquired":  s.TotalAcquired,
		"total_returned":  s.TotalReturned,
	}
}

// Grow pushes fresh buffers until the idle count reaches
// min(target, MaxPoolSize).
func (p *Pool) Grow(target int) {
	if target > p.config.MaxPoolSize {
		target = p.config.MaxPoolSize
	}
	p.mu.Lock()
	for p.idle.Length() < target {
		p.idle.Add(buffer.New(p.config.BufferSize))
	}
	p.mu.Unlock()
}

// Shrink discards idle buffers down to MinPoolSize. Discarded buffers are
// already zeroed per the idle-list invariant.
func (p *Pool) Shrink() {
	p.mu.Lock()
	for p.idle.Length() > p.config.MinPoolSize {
		p.idle.Remove()
	}
	p.mu.Unlock()
}

// Clear discards every idle buffer.
func (p *Pool) Clear() {
	p.mu.Lock()
	for p.idle.Length() > 0 {
		p.idle.Remove()
	}
	p.mu.Unlock()
}

// release burns the buffer, then reinserts it if the idle list has room.
// The burn completes before the buffer becomes reachable from the pool.
func (p *Pool) release(buf *buffer.Buffer) {
	buf.Burn()
	p.mu.Lock()
	p.totalReturned++
	if p.idle.Length() < p.config.MaxPoolSize {
		p.idle.Add(buf)
	}
	p.mu.Unlock()
}

// PooledBuffer is a buffer borrowed from a Pool. The embedded *buffer.Buffer
// exposes the full Buffer API directly on the guard. After Release, Leak or
// DropNow the guard is detached and must not be used.
type PooledBuffer struct {
	*buffer.Buffer
	pool *Pool
}

// Release burns the buffer and returns it to the pool (or discards it when
// the pool is full). Idempotent.
func (pb *PooledBuffer) Release() {
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
func (pb *PooledBuffer) Leak() *buffer.Buffer {
	if pb.Buffer == nil {
		return nil
	}
	runtime.SetFinalizer(pb, nil)
	buf := pb.Buffer
	pb.Buffer = nil
	return buf
}

// DropNow burns and discards the buffer immediately, bypassing pool return.
func (pb *PooledBuffer) DropNow() {
	if pb.Buffer == nil {
		return
	}
	runtime.SetFinalizer(pb, nil)
	pb.Buffer.Burn()
	pb.Buffer = nil
}
