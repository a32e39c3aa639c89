// File: circular/circular_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package circular

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/momentics/secbuf/api"
)

func TestLazyAllocation(t *testing.T) {
	c := New(1024)
	if c.Allocated() {
		t.Error("fresh ring should not be allocated")
	}
	out := make([]byte, 16)
	n, err := c.Read(out)
	if err != nil || n != 0 {
		t.Errorf("read on unallocated ring = %d, %v", n, err)
	}
	n, err = c.Peek(out)
	if err != nil || n != 0 {
		t.Errorf("peek on unallocated ring = %d, %v", n, err)
	}
	if _, err := c.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if !c.Allocated() {
		t.Error("first write should materialize the ring")
	}
}

func TestWrapRoundTrip(t *testing.T) {
	c := New(8)
	if _, err := c.Write([]byte("12345")); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 3)
	if n, _ := c.Read(out); n != 3 || string(out) != "123" {
		t.Fatalf("first read = %d %q", n, out)
	}
	// "6789" wraps: 1 byte at the end, 3 at the start.
	if _, err := c.Write([]byte("6789")); err != nil {
		t.Fatal(err)
	}
	if c.Used() != 6 {
		t.Errorf("used = %d, want 6", c.Used())
	}
	out = make([]byte, 6)
	if n, _ := c.Read(out); n != 6 || string(out) != "456789" {
		t.Fatalf("wrapped read = %d %q", n, out)
	}
	if !c.IsEmpty() {
		t.Error("ring should be empty")
	}
}

func TestWriteAllOrNothing(t *testing.T) {
	c := New(4)
	if _, err := c.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Write([]byte("de")); !errors.Is(err, api.ErrInsufficientSpace) {
		t.Errorf("overfull write: got %v", err)
	}
	if c.Used() != 3 {
		t.Errorf("partial write leaked: used = %d", c.Used())
	}
	if _, err := c.Write([]byte("d")); err != nil {
		t.Fatal(err)
	}
	if !c.IsFull() {
		t.Error("ring should be full")
	}
}

func TestPeekIdempotent(t *testing.T) {
	c := New(16)
	if _, err := c.Write([]byte("peekable")); err != nil {
		t.Fatal(err)
	}
	a := make([]byte, 8)
	b := make([]byte, 8)
	if n, _ := c.Peek(a); n != 8 {
		t.Fatalf("peek = %d", n)
	}
	if n, _ := c.Peek(b); n != 8 {
		t.Fatalf("second peek = %d", n)
	}
	if !bytes.Equal(a, b) || string(a) != "peekable" {
		t.Errorf("peeks disagree: %q vs %q", a, b)
	}
	if c.Used() != 8 {
		t.Errorf("peek consumed data: used = %d", c.Used())
	}
}

func TestPow2Wrap(t *testing.T) {
	c := NewPow2(3) // size 8
	if c.Size() != 8 {
		t.Fatalf("size = %d", c.Size())
	}
	// Drive the cursors around the ring several times.
	for i := 0; i < 10; i++ {
		if _, err := c.Write([]byte{byte(i), byte(i + 1), byte(i + 2)}); err != nil {
			t.Fatal(err)
		}
		out := make([]byte, 3)
		if n, _ := c.Read(out); n != 3 || out[0] != byte(i) {
			t.Fatalf("lap %d: read %d %v", i, n, out)
		}
	}
}

func TestWrapPathsMatchModel(t *testing.T) {
	// The modulo (size 7) and bitmask (size 8) wrap paths must each behave
	// exactly like a plain FIFO under random interleavings.
	for _, size := range []int{7, 8} {
		rng := rand.New(rand.NewSource(7))
		c := New(size)
		var model []byte
		for i := 0; i < 2000; i++ {
			chunk := make([]byte, 1+rng.Intn(5))
			rng.Read(chunk)
			if _, err := c.Write(chunk); err == nil {
				if size-len(model) < len(chunk) {
					t.Fatalf("size %d iter %d: accepted %d bytes with %d free",
						size, i, len(chunk), size-len(model))
				}
				model = append(model, chunk...)
			} else if size-len(model) >= len(chunk) {
				t.Fatalf("size %d iter %d: rejected %d bytes with %d free: %v",
					size, i, len(chunk), size-len(model), err)
			}

			out := make([]byte, 1+rng.Intn(5))
			n, _ := c.Read(out)
			want := len(model)
			if want > len(out) {
				want = len(out)
			}
			if n != want || !bytes.Equal(out[:n], model[:n]) {
				t.Fatalf("size %d iter %d: read %d %v, want %d %v",
					size, i, n, out[:n], want, model[:want])
			}
			model = model[n:]
			if c.Used() != len(model) {
				t.Fatalf("size %d iter %d: used %d, model %d", size, i, c.Used(), len(model))
			}
		}
	}
}

func TestReadSlices(t *testing.T) {
	c := New(8)
	if _, err := c.Write([]byte("12345")); err != nil {
		t.Fatal(err)
	}
	if err := c.IncrRead(3); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Write([]byte("6789")); err != nil {
		t.Fatal(err)
	}
	p1, p2 := c.ReadSlices()
	if string(p1) != "45678" || string(p2) != "9" {
		t.Errorf("slices = %q, %q", p1, p2)
	}
	if err := c.IncrRead(len(p1) + len(p2)); err != nil {
		t.Fatal(err)
	}
	if !c.IsEmpty() {
		t.Error("ring should be empty after IncrRead")
	}
	if p1, p2 := c.ReadSlices(); p1 != nil || p2 != nil {
		t.Error("empty ring should return nil slices")
	}
}

func TestWriteSlice(t *testing.T) {
	c := New(8)
	s, err := c.WriteSlice(5)
	if err != nil || len(s) != 5 {
		t.Fatalf("WriteSlice = %d, %v", len(s), err)
	}
	copy(s, "hello")
	if err := c.IncrWrite(5); err != nil {
		t.Fatal(err)
	}
	if err := c.IncrRead(5); err != nil {
		t.Fatal(err)
	}
	// Next contiguous run would cross the boundary.
	if _, err := c.WriteSlice(5); !errors.Is(err, api.ErrWouldWrap) {
		t.Errorf("crossing request: got %v", err)
	}
	// But a wrap-aware request succeeds.
	p1, p2, err := c.WriteSlices(5)
	if err != nil || len(p1) != 3 || len(p2) != 2 {
		t.Fatalf("WriteSlices = %d+%d, %v", len(p1), len(p2), err)
	}
	copy(p1, "abc")
	copy(p2, "de")
	if err := c.IncrWrite(5); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 5)
	if n, _ := c.Read(out); n != 5 || string(out) != "abcde" {
		t.Errorf("read back = %d %q", n, out)
	}
}

func TestWriteSliceBounds(t *testing.T) {
	c := New(8)
	if _, err := c.WriteSlice(9); !errors.Is(err, api.ErrInsufficientSpace) {
		t.Errorf("oversized slice: got %v", err)
	}
	if _, _, err := c.WriteSlices(9); !errors.Is(err, api.ErrInsufficientSpace) {
		t.Errorf("oversized slices: got %v", err)
	}
	if err := c.IncrWrite(9); !errors.Is(err, api.ErrInsufficientSpace) {
		t.Errorf("oversized IncrWrite: got %v", err)
	}
	if err := c.IncrRead(1); !errors.Is(err, api.ErrBufferOverflow) {
		t.Errorf("IncrRead past used: got %v", err)
	}
}

func TestClearKeepsAllocation(t *testing.T) {
	c := New(16)
	if _, err := c.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if !c.IsEmpty() || !c.Allocated() {
		t.Error("clear should empty the ring but keep the allocation")
	}
}

func TestFree(t *testing.T) {
	c := New(16)
	if _, err := c.Write([]byte("secret")); err != nil {
		t.Fatal(err)
	}
	c.Free()
	if c.Allocated() || !c.IsEmpty() {
		t.Error("free should drop the allocation and empty the ring")
	}
	// Safe on an unallocated ring, and the ring stays usable.
	c.Free()
	if _, err := c.Write([]byte("again")); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 5)
	if n, _ := c.Read(out); n != 5 || string(out) != "again" {
		t.Errorf("read after free = %d %q", n, out)
	}
}

func TestTryNew(t *testing.T) {
	if _, err := TryNew(MaxSize + 1); !errors.Is(err, api.ErrSizeTooBig) {
		t.Errorf("oversized: got %v", err)
	}
	c, err := TryNew(64)
	if err != nil || c.Size() != 64 {
		t.Errorf("TryNew(64) = %v, %v", c, err)
	}
}

func TestNewPanicsAboveMax(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(MaxSize + 1)
}

func TestZeroSizeRing(t *testing.T) {
	c := New(0)
	if !c.IsFull() || !c.IsEmpty() {
		t.Error("zero-size ring is both empty and full")
	}
	if _, err := c.Write([]byte("x")); !errors.Is(err, api.ErrInsufficientSpace) {
		t.Errorf("write to zero ring: got %v", err)
	}
	if err := c.IncrWrite(0); err != nil {
		t.Errorf("IncrWrite(0): %v", err)
	}
	if err := c.IncrRead(0); err != nil {
		t.Errorf("IncrRead(0): %v", err)
	}
}

func TestWasteful(t *testing.T) {
	c := New(64 * 1024)
	if c.Wasteful() {
		t.Error("unallocated ring is never wasteful")
	}
	if _, err := c.Write([]byte("tiny")); err != nil {
		t.Fatal(err)
	}
	if !c.Wasteful() {
		t.Error("64K ring holding 4 bytes should be wasteful")
	}
	small := New(1024)
	if _, err := small.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if small.Wasteful() {
		t.Error("1K ring is below the absolute threshold")
	}
}
