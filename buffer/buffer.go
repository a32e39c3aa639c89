// File: buffer/buffer.go
// Package buffer implements the position-tracked linear byte buffer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Buffer owns a byte array of fixed allocated capacity plus a read/write
// cursor (pos) and a valid-data length. The invariant 0 <= pos <= len <=
// capacity holds after every operation. All bytes are securely zeroed on
// Burn, and every path that releases capacity wipes the released region
// first.

package buffer

import (
	"fmt"
	"runtime"

	"github.com/momentics/secbuf/api"
	"github.com/momentics/secbuf/internal/memzero"
)

const (
	// MaxSize is the absolute buffer size ceiling (1 GB).
	MaxSize = 1_000_000_000
	// MaxIncrement bounds a single pos/len increment to stop integer-overflow
	// attacks driven by malicious length fields.
	MaxIncrement = 1_000_000_000
	// WastefulThreshold is the absolute capacity above which a mostly-empty
	// buffer is classified as wasteful.
	WastefulThreshold = 8192
)

// Buffer is a linear, growable byte container with a read/write cursor.
//
// The materialized region is data[0:len(data)]; cap(data) is the allocated
// capacity. Bytes between the materialized length and the capacity are kept
// zeroed so growth never exposes stale content.
type Buffer struct {
	data   []byte
	pos    int
	length int
}

// New creates a buffer of `size` zeroed bytes with length 0.
//
// Panics if size exceeds MaxSize: an oversized buffer is a configuration
// mistake, not a runtime data condition. Use TryNew for a fallible variant.
func New(size int) *Buffer {
	if size < 0 || size > MaxSize {
		panic(fmt.Sprintf("secbuf: buffer size %d exceeds maximum %d", size, MaxSize))
	}
	b := &Buffer{data: make([]byte, size)}
	runtime.SetFinalizer(b, (*Buffer).Burn)
	return b
}

// TryNew is the fallible form of New.
func TryNew(size int) (*Buffer, error) {
	if size < 0 || size > MaxSize {
		return nil, api.ErrSizeTooBig
	}
	return New(size), nil
}

// NewWithCapacity creates a buffer with pre-allocated capacity but an empty
// materialized region. Storage is exposed incrementally by SetLen, IncrLen
// and IncrWritePos.
//
// Panics if capacity exceeds MaxSize.
func NewWithCapacity(capacity int) *Buffer {
	if capacity < 0 || capacity > MaxSize {
		panic(fmt.Sprintf("secbuf: buffer capacity %d exceeds maximum %d", capacity, MaxSize))
	}
	b := &Buffer{data: make([]byte, 0, capacity)}
	runtime.SetFinalizer(b, (*Buffer).Burn)
	return b
}

// FromBytes creates a buffer that takes ownership of data. Length is set to
// len(data) and the cursor to 0. The caller must not retain data.
func FromBytes(data []byte) *Buffer {
	b := &Buffer{data: data, length: len(data)}
	runtime.SetFinalizer(b, (*Buffer).Burn)
	return b
}

// Capacity returns the allocated capacity.
func (b *Buffer) Capacity() int { return cap(b.data) }

// Len returns the length of valid data.
func (b *Buffer) Len() int { return b.length }

// IsEmpty reports whether the buffer holds no valid data.
func (b *Buffer) IsEmpty() bool { return b.length == 0 }

// Pos returns the current read/write position.
func (b *Buffer) Pos() int { return b.pos }

// Remaining returns the number of bytes readable from the current position.
func (b *Buffer) Remaining() int {
	if b.pos > b.length {
		return 0
	}
	return b.length - b.pos
}

// HasRemaining reports whether at least count bytes are readable.
func (b *Buffer) HasRemaining(count int) bool {
	return b.Remaining() >= count
}

// Bytes returns the valid region data[0:len]. The slice aliases the buffer's
// storage; it is invalidated by Resize, Reserve, ShrinkToFit and Burn.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.length]
}

// SetPos sets the read/write position.
func (b *Buffer) SetPos(pos int) error {
	if pos < 0 || pos > b.length {
		return api.ErrPositionOutOfBounds
	}
	b.pos = pos
	return nil
}

// SetLen sets the length of valid data, materializing storage as needed.
func (b *Buffer) SetLen(length int) error {
	if length < 0 || length > MaxSize {
		return api.ErrSizeTooBig
	}
	b.grow(length)
	b.length = length
	if b.pos > length {
		b.pos = length
	}
	return nil
}

// IncrPos advances the position by incr, bounded by MaxIncrement and the
// valid length.
func (b *Buffer) IncrPos(incr int) error {
	if incr < 0 || incr > MaxIncrement || b.pos+incr > b.length {
		return api.ErrIncrementTooLarge
	}
	b.pos += incr
	return nil
}

// DecrPos moves the position backwards by decr.
func (b *Buffer) DecrPos(decr int) error {
	if decr < 0 || decr > b.pos {
		return api.ErrPositionOutOfBounds
	}
	b.pos -= decr
	return nil
}

// IncrLen extends the valid length by incr, materializing storage as needed.
func (b *Buffer) IncrLen(incr int) error {
	if incr < 0 || incr > MaxIncrement {
		return api.ErrIncrementTooLarge
	}
	newLen := b.length + incr
	if newLen > MaxSize {
		return api.ErrSizeTooBig
	}
	b.grow(newLen)
	b.length = newLen
	return nil
}

// IncrWritePos advances the write position, raising the valid length when
// the cursor moves past it.
func (b *Buffer) IncrWritePos(incr int) error {
	if incr < 0 || incr > MaxIncrement {
		return api.ErrIncrementTooLarge
	}
	newPos := b.pos + incr
	if newPos > MaxSize {
		return api.ErrIncrementTooLarge
	}
	b.grow(newPos)
	b.pos = newPos
	if b.pos > b.length {
		b.length = b.pos
	}
	return nil
}

// Reset clears position and length for reuse. The bytes and the allocation
// are untouched; use Burn for secure erasure.
func (b *Buffer) Reset() {
	b.pos = 0
	b.length = 0
}

// Burn securely zeroes the entire allocated region and resets position and
// length. The wipe covers data[0:cap], not just the valid region, so content
// parked beyond the materialized length cannot survive a pool round-trip.
func (b *Buffer) Burn() {
	memzero.Zero(b.data[:cap(b.data)])
	b.pos = 0
	b.length = 0
}

// Resize grows or shrinks the materialized region, preserving existing data.
// Bytes released by a shrink are zeroed before the region is truncated.
func (b *Buffer) Resize(newSize int) error {
	if newSize < 0 || newSize > MaxSize {
		return api.ErrSizeTooBig
	}
	if newSize < len(b.data) {
		memzero.Zero(b.data[newSize:])
		b.data = b.data[:newSize]
	} else {
		b.grow(newSize)
	}
	if b.length > newSize {
		b.length = newSize
	}
	if b.pos > newSize {
		b.pos = newSize
	}
	return nil
}

// Reserve ensures capacity for at least `additional` bytes beyond the
// materialized region, reallocating (and wiping the old array) if needed.
func (b *Buffer) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	need := len(b.data) + additional
	if need <= cap(b.data) {
		return
	}
	b.realloc(len(b.data), need)
}

// ShrinkToFit truncates the buffer to the valid length and drops excess
// capacity. The released tail is zeroed before the old array is abandoned.
func (b *Buffer) ShrinkToFit() {
	if len(b.data) > b.length {
		memzero.Zero(b.data[b.length:])
		b.data = b.data[:b.length]
	}
	if cap(b.data) > b.length {
		b.realloc(b.length, b.length)
	}
}

// Wasteful reports whether the capacity exceeds 4x the current length and
// the absolute threshold. Pools and long-lived owners use this to decide
// whether to shrink.
func (b *Buffer) Wasteful() bool {
	return cap(b.data) > 4*b.length && cap(b.data) > WastefulThreshold
}

// Overhead returns the number of allocated bytes not holding valid data.
func (b *Buffer) Overhead() int {
	return cap(b.data) - b.length
}

// grow extends the materialized region to at least n bytes. Newly exposed
// bytes are zeroed explicitly: FromBytes may hand us a slice whose spare
// capacity holds caller residue.
func (b *Buffer) grow(n int) {
	switch {
	case n <= len(b.data):
	case n <= cap(b.data):
		old := len(b.data)
		b.data = b.data[:n]
		memzero.Zero(b.data[old:])
	default:
		newCap := 2 * cap(b.data)
		if newCap < n {
			newCap = n
		}
		if newCap > MaxSize {
			newCap = MaxSize
		}
		b.realloc(n, newCap)
	}
}

// realloc swaps in a fresh array of capacity newCap with the first newLen
// bytes preserved, then wipes the old array before the GC reclaims it.
func (b *Buffer) realloc(newLen, newCap int) {
	grown := make([]byte, newLen, newCap)
	copy(grown, b.data)
	memzero.Zero(b.data[:cap(b.data)])
	b.data = grown
}
