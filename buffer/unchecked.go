// File: buffer/unchecked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unchecked fast-path operations for hot loops that have already validated
// bounds. Each carries a precondition contract; violating it is a caller
// bug, not a recoverable error, and panics via the runtime bounds check.
// Only fully-validated values may reach these paths — never
// attacker-controlled input.

package buffer

import "encoding/binary"

// PutU32Unchecked writes a big-endian uint32 without a bounds check.
//
// Precondition: pos+4 <= materialized capacity.
func (b *Buffer) PutU32Unchecked(val uint32) {
	binary.BigEndian.PutUint32(b.data[b.pos:], val)
	b.pos += 4
	if b.pos > b.length {
		b.length = b.pos
	}
}

// GetU32Unchecked reads a big-endian uint32 without a bounds check.
//
// Precondition: pos+4 <= len.
func (b *Buffer) GetU32Unchecked() uint32 {
	val := binary.BigEndian.Uint32(b.data[b.pos:])
	b.pos += 4
	return val
}

// PutU64Unchecked writes a big-endian uint64 without a bounds check.
//
// Precondition: pos+8 <= materialized capacity.
func (b *Buffer) PutU64Unchecked(val uint64) {
	binary.BigEndian.PutUint64(b.data[b.pos:], val)
	b.pos += 8
	if b.pos > b.length {
		b.length = b.pos
	}
}

// GetU64Unchecked reads a big-endian uint64 without a bounds check.
//
// Precondition: pos+8 <= len.
func (b *Buffer) GetU64Unchecked() uint64 {
	val := binary.BigEndian.Uint64(b.data[b.pos:])
	b.pos += 8
	return val
}

// PutBytesUnchecked copies a byte run without a bounds check.
//
// Precondition: pos+len(bytes) <= materialized capacity.
func (b *Buffer) PutBytesUnchecked(bytes []byte) {
	copy(b.data[b.pos:b.pos+len(bytes)], bytes)
	b.pos += len(bytes)
	if b.pos > b.length {
		b.length = b.pos
	}
}

// ReadSliceUnchecked returns a view of n bytes at the cursor and advances
// it, without a bounds check.
//
// Precondition: pos+n <= len.
func (b *Buffer) ReadSliceUnchecked(n int) []byte {
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out
}
