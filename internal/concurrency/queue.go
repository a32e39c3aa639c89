// File: internal/concurrency/queue.go
// Package concurrency provides the lock-free queue backing the fast pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC queue using per-cell sequence numbers, based on the pattern
// by Dmitry Vyukov. Head and tail are padded onto separate cache lines to
// limit false sharing between producers and consumers.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/secbuf/api"
)

const cacheLinePad = 64

// Ensure compile-time interface compliance.
var _ api.Queue[any] = (*Queue[any])(nil)

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// Queue is a bounded lock-free MPMC FIFO. Capacity is rounded up to the
// next power of two. Push and Pop never block; Push reports false when the
// queue is full, Pop reports false when it is empty.
type Queue[T any] struct {
	head  uint64
	_     [cacheLinePad]byte
	tail  uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []cell[T]
}

// NewQueue creates a queue holding at least `capacity` items.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}

	q := &Queue[T]{
		mask:  uint64(size - 1),
		cells: make([]cell[T], size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// Push adds an item; returns false if the queue is full.
func (q *Queue[T]) Push(item T) bool {
	for {
		tail := atomic.LoadUint64(&q.tail)
		c := &q.cells[tail&q.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				c.data = item
				c.sequence.Store(tail + 1)
				return true
			}
		} else if dif < 0 {
			return false // full
		}
		// tail moved, retry
	}
}

// Pop removes and returns the oldest item; ok is false if the queue is empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&q.head)
		c := &q.cells[head&q.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
				item = c.data
				var zero T
				c.data = zero // drop the reference so the GC can reclaim it
				c.sequence.Store(head + q.mask + 1)
				return item, true
			}
		} else if dif < 0 {
			var zero T
			return zero, false // empty
		}
		// head moved, retry
	}
}

// Len returns the number of items currently in the queue.
// The value is a snapshot and may be stale under concurrent access.
func (q *Queue[T]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)
	return int(tail - head)
}

// Cap returns the fixed (rounded) capacity.
func (q *Queue[T]) Cap() int {
	return len(q.cells)
}
