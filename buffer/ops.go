// File: buffer/ops.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Checked read/write operations. Integers are serialized big-endian; the
// length-prefixed string framing (4-byte big-endian length + raw bytes,
// 400,000-byte cap) is a wire contract and must stay bit-exact.

package buffer

import (
	"github.com/momentics/secbuf/api"
)

const (
	// MaxStringLen caps a length-prefixed string (enforced by both writer
	// and reader).
	MaxStringLen = 400_000
	// MaxViewLen caps a single zero-copy view request.
	MaxViewLen = 1_000_000_000
)

// PutU32 appends a big-endian uint32 at the cursor.
func (b *Buffer) PutU32(val uint32) error {
	if b.pos+4 > len(b.data) {
		return api.ErrBufferOverflow
	}
	b.PutU32Unchecked(val)
	return nil
}

// GetU32 reads a big-endian uint32 at the cursor.
func (b *Buffer) GetU32() (uint32, error) {
	if b.pos+4 > b.length {
		return 0, api.ErrBufferOverflow
	}
	return b.GetU32Unchecked(), nil
}

// PutU64 appends a big-endian uint64 at the cursor.
func (b *Buffer) PutU64(val uint64) error {
	if b.pos+8 > len(b.data) {
		return api.ErrBufferOverflow
	}
	b.PutU64Unchecked(val)
	return nil
}

// GetU64 reads a big-endian uint64 at the cursor.
func (b *Buffer) GetU64() (uint64, error) {
	if b.pos+8 > b.length {
		return 0, api.ErrBufferOverflow
	}
	return b.GetU64Unchecked(), nil
}

// PutByte appends a single byte at the cursor.
func (b *Buffer) PutByte(val byte) error {
	if b.pos >= len(b.data) {
		return api.ErrBufferOverflow
	}
	b.data[b.pos] = val
	b.pos++
	if b.pos > b.length {
		b.length = b.pos
	}
	return nil
}

// GetByte reads a single byte at the cursor.
func (b *Buffer) GetByte() (byte, error) {
	if b.pos >= b.length {
		return 0, api.ErrBufferOverflow
	}
	val := b.data[b.pos]
	b.pos++
	return val, nil
}

// GetBool reads one byte as a boolean (0 = false, non-zero = true).
func (b *Buffer) GetBool() (bool, error) {
	val, err := b.GetByte()
	if err != nil {
		return false, err
	}
	return val != 0, nil
}

// PutBytes appends a byte run with a single bounds check.
func (b *Buffer) PutBytes(bytes []byte) error {
	if b.pos+len(bytes) > len(b.data) {
		return api.ErrBufferOverflow
	}
	b.PutBytesUnchecked(bytes)
	return nil
}

// GetBytes reads n bytes into a freshly allocated slice.
func (b *Buffer) GetBytes(n int) ([]byte, error) {
	if n < 0 || b.pos+n > b.length {
		return nil, api.ErrBufferOverflow
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:])
	b.pos += n
	return out, nil
}

// ReadSlice reads n bytes as a view into the buffer, advancing the cursor.
// The view aliases buffer storage and is invalidated like Bytes().
func (b *Buffer) ReadSlice(n int) ([]byte, error) {
	if n < 0 || b.pos+n > b.length {
		return nil, api.ErrBufferOverflow
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// View returns a read view of n bytes at the cursor without advancing it.
func (b *Buffer) View(n int) ([]byte, error) {
	if n < 0 || n > MaxViewLen {
		return nil, api.ErrViewTooLong
	}
	if b.pos+n > b.length {
		return nil, api.ErrBufferOverflow
	}
	return b.data[b.pos : b.pos+n], nil
}

// WriteView returns a writable view of n bytes at the cursor without
// advancing it. Pair with IncrWritePos after filling the view.
func (b *Buffer) WriteView(n int) ([]byte, error) {
	if n < 0 || n > MaxViewLen {
		return nil, api.ErrViewTooLong
	}
	if b.pos+n > len(b.data) {
		return nil, api.ErrBufferOverflow
	}
	return b.data[b.pos : b.pos+n], nil
}

// PutString writes a length-prefixed string: 4-byte big-endian length
// followed by the raw bytes. Strings above MaxStringLen are rejected before
// the prefix is written.
func (b *Buffer) PutString(s []byte) error {
	if len(s) > MaxStringLen {
		return api.ErrStringTooLong
	}
	if err := b.PutU32(uint32(len(s))); err != nil {
		return err
	}
	return b.PutBytes(s)
}

// GetString reads a length-prefixed string into a fresh slice, rejecting
// declared lengths above MaxStringLen.
func (b *Buffer) GetString() ([]byte, error) {
	n, err := b.GetU32()
	if err != nil {
		return nil, err
	}
	if n > MaxStringLen {
		return nil, api.ErrStringTooLong
	}
	return b.GetBytes(int(n))
}

// SkipString advances past a length-prefixed string without reading it.
func (b *Buffer) SkipString() error {
	n, err := b.GetU32()
	if err != nil {
		return err
	}
	if n > MaxStringLen {
		return api.ErrStringTooLong
	}
	return b.IncrPos(int(n))
}
