// File: circular/circular.go
// Package circular implements a lazily-allocated ring buffer for streaming
// data.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The backing array is not materialized until the first write; reads and
// peeks on an unallocated buffer return zero bytes. Power-of-two sizes use
// a bitmask wrap instead of modulo. Free zeroes the original allocation in
// place before releasing it.

package circular

import (
	"fmt"
	"runtime"

	"github.com/momentics/secbuf/api"
	"github.com/momentics/secbuf/internal/memzero"
)

const (
	// MaxSize is the absolute ring buffer size ceiling (100 MB).
	MaxSize = 100_000_000
	// WastefulThreshold is the absolute size above which a mostly-empty
	// ring is classified as wasteful.
	WastefulThreshold = 8192
)

// CircularBuffer is a fixed-capacity ring buffer whose valid region may wrap
// past the end of the array back to offset 0. The distance from readPos to
// writePos walking forward through the ring always equals used.
type CircularBuffer struct {
	data     []byte // nil until first write
	size     int
	used     int
	readPos  int
	writePos int
	pow2     bool
}

// New creates an empty, unallocated ring buffer of the given size.
//
// Panics if size exceeds MaxSize; use TryNew for a fallible variant.
func New(size int) *CircularBuffer {
	if size < 0 || size > MaxSize {
		panic(fmt.Sprintf("secbuf: circular buffer size %d exceeds maximum %d", size, MaxSize))
	}
	return &CircularBuffer{
		size: size,
		pow2: size > 0 && size&(size-1) == 0,
	}
}

// NewPow2 creates a ring buffer of size 1<<sizeLog2, enabling the bitmask
// wrap path.
//
// Panics if the resulting size exceeds MaxSize.
func NewPow2(sizeLog2 uint) *CircularBuffer {
	size := 1 << sizeLog2
	if size > MaxSize {
		panic(fmt.Sprintf("secbuf: circular buffer size %d exceeds maximum %d", size, MaxSize))
	}
	return &CircularBuffer{size: size, pow2: true}
}

// TryNew is the fallible form of New.
func TryNew(size int) (*CircularBuffer, error) {
	if size < 0 || size > MaxSize {
		return nil, api.ErrSizeTooBig
	}
	return New(size), nil
}

// Used returns the number of bytes currently held.
func (c *CircularBuffer) Used() int { return c.used }

// Available returns the free space for writing.
func (c *CircularBuffer) Available() int { return c.size - c.used }

// Size returns the total capacity of the ring.
func (c *CircularBuffer) Size() int { return c.size }

// IsEmpty reports whether the ring holds no data.
func (c *CircularBuffer) IsEmpty() bool { return c.used == 0 }

// IsFull reports whether the ring is at capacity.
func (c *CircularBuffer) IsFull() bool { return c.used == c.size }

// Allocated reports whether the backing array has been materialized.
func (c *CircularBuffer) Allocated() bool { return c.data != nil }

// Wasteful reports whether the allocated ring is mostly idle: above the
// absolute threshold with less than a quarter of it in use.
func (c *CircularBuffer) Wasteful() bool {
	return c.data != nil && c.size > WastefulThreshold && 4*c.used < c.size
}

// wrap maps pos+delta onto a valid ring offset. Every operation that
// advances a cursor must go through here.
func (c *CircularBuffer) wrap(pos, delta int) int {
	newPos := pos + delta
	if c.pow2 {
		return newPos & (c.size - 1)
	}
	return newPos % c.size
}

// allocate materializes the backing array and installs the finalizer
// backstop that wipes it if the owner never calls Free.
func (c *CircularBuffer) allocate() {
	c.data = make([]byte, c.size)
	runtime.SetFinalizer(c, (*CircularBuffer).Free)
}

// Write copies data into the ring in at most two contiguous segments.
// The write is all-or-nothing: if the free space cannot hold every byte,
// ErrInsufficientSpace is returned and nothing is written.
func (c *CircularBuffer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if c.Available() < len(data) {
		return 0, api.ErrInsufficientSpace
	}
	if c.data == nil {
		c.allocate()
	}

	first := len(data)
	if contig := c.size - c.writePos; first > contig {
		first = contig
	}
	copy(c.data[c.writePos:], data[:first])
	if first < len(data) {
		copy(c.data, data[first:])
	}

	c.writePos = c.wrap(c.writePos, len(data))
	c.used += len(data)
	return len(data), nil
}

// Read copies up to min(len(output), used) bytes out of the ring, advancing
// the read cursor. Reading an unallocated or empty ring returns 0.
func (c *CircularBuffer) Read(output []byte) (int, error) {
	n := c.copyOut(output)
	if n > 0 {
		c.readPos = c.wrap(c.readPos, n)
		c.used -= n
	}
	return n, nil
}

// Peek performs the identical copy as Read but leaves the cursors and the
// used count untouched.
func (c *CircularBuffer) Peek(output []byte) (int, error) {
	return c.copyOut(output), nil
}

// copyOut copies up to min(len(output), used) bytes starting at readPos in
// at most two contiguous segments, without mutating any state.
func (c *CircularBuffer) copyOut(output []byte) int {
	if c.used == 0 || c.data == nil {
		return 0
	}
	toRead := len(output)
	if toRead > c.used {
		toRead = c.used
	}

	first := toRead
	if contig := c.size - c.readPos; first > contig {
		first = contig
	}
	copy(output, c.data[c.readPos:c.readPos+first])
	if first < toRead {
		copy(output[first:], c.data[:toRead-first])
	}
	return toRead
}

// ReadSlices returns zero-copy views over the valid region: the first runs
// from readPos to the ring boundary or the end of the data, the second
// covers the wrapped remainder and is empty when the data is contiguous.
// Pair with IncrRead for the exact number of bytes consumed.
func (c *CircularBuffer) ReadSlices() ([]byte, []byte) {
	if c.used == 0 || c.data == nil {
		return nil, nil
	}
	first := c.used
	if contig := c.size - c.readPos; first > contig {
		first = contig
	}
	p1 := c.data[c.readPos : c.readPos+first]
	if first < c.used {
		return p1, c.data[:c.used-first]
	}
	return p1, nil
}

// WriteSlice returns a single contiguous writable view of exactly n free
// bytes at the write position, materializing the ring if needed. A request
// whose region would cross the ring boundary is rejected with ErrWouldWrap:
// use WriteSlices or the copying Write for wrap-spanning writes. Pair with
// IncrWrite for the exact number of bytes written.
func (c *CircularBuffer) WriteSlice(n int) ([]byte, error) {
	if n < 0 || n > c.Available() {
		return nil, api.ErrInsufficientSpace
	}
	if c.writePos+n > c.size {
		return nil, api.ErrWouldWrap
	}
	if c.data == nil {
		c.allocate()
	}
	return c.data[c.writePos : c.writePos+n], nil
}

// WriteSlices returns one or two writable views covering exactly n free
// bytes; the second is nil when the region does not wrap. Pair with
// IncrWrite for the exact number of bytes written.
func (c *CircularBuffer) WriteSlices(n int) ([]byte, []byte, error) {
	if n < 0 || n > c.Available() {
		return nil, nil, api.ErrInsufficientSpace
	}
	if c.data == nil {
		c.allocate()
	}
	first := n
	if contig := c.size - c.writePos; first > contig {
		first = contig
	}
	p1 := c.data[c.writePos : c.writePos+first]
	if first < n {
		return p1, c.data[:n-first], nil
	}
	return p1, nil, nil
}

// IncrWrite advances the write cursor after a zero-copy write.
func (c *CircularBuffer) IncrWrite(n int) error {
	if n < 0 || n > c.Available() {
		return api.ErrInsufficientSpace
	}
	if n == 0 {
		return nil
	}
	c.used += n
	c.writePos = c.wrap(c.writePos, n)
	return nil
}

// IncrRead advances the read cursor after consuming a zero-copy read view.
func (c *CircularBuffer) IncrRead(n int) error {
	if n < 0 || n > c.used {
		return api.ErrBufferOverflow
	}
	if n == 0 {
		return nil
	}
	c.used -= n
	c.readPos = c.wrap(c.readPos, n)
	return nil
}

// Clear resets the cursors without touching memory. The allocation is kept
// for reuse.
func (c *CircularBuffer) Clear() {
	c.used = 0
	c.readPos = 0
	c.writePos = 0
}

// Free zeroes the backing allocation in place and releases it. The original
// array is the one overwritten; zeroing a copy while dropping the unzeroed
// original would defeat the purpose. Safe to call on an unallocated ring.
func (c *CircularBuffer) Free() {
	if c.data != nil {
		memzero.Zero(c.data)
		c.data = nil
		runtime.SetFinalizer(c, nil)
	}
	c.Clear()
}
