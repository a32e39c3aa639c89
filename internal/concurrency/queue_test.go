// File: internal/concurrency/queue_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueueBasic(t *testing.T) {
	q := NewQueue[int](4)
	if q.Cap() != 4 {
		t.Fatalf("cap = %d, want 4", q.Cap())
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("pop on empty queue should fail")
	}
	for i := 0; i < 4; i++ {
		if !q.Push(i) {
			t.Fatalf("push %d failed", i)
		}
	}
	if q.Push(99) {
		t.Fatal("push into full queue should fail")
	}
	if q.Len() != 4 {
		t.Fatalf("len = %d, want 4", q.Len())
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("pop %d = %d, %v", i, v, ok)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("len = %d after drain", q.Len())
	}
}

func TestQueueCapacityRounding(t *testing.T) {
	for _, tc := range []struct{ in, want int }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {5, 8}, {8, 8}, {100, 128},
	} {
		if got := NewQueue[int](tc.in).Cap(); got != tc.want {
			t.Errorf("NewQueue(%d).Cap() = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestQueueFIFOWrap(t *testing.T) {
	q := NewQueue[int](4)
	// Drive the indices past the ring boundary repeatedly.
	for lap := 0; lap < 20; lap++ {
		for i := 0; i < 3; i++ {
			if !q.Push(lap*10 + i) {
				t.Fatalf("lap %d: push %d failed", lap, i)
			}
		}
		for i := 0; i < 3; i++ {
			v, ok := q.Pop()
			if !ok || v != lap*10+i {
				t.Fatalf("lap %d: pop = %d, %v", lap, v, ok)
			}
		}
	}
}

func TestQueueMPMCStress(t *testing.T) {
	const (
		producers    = 10
		consumers    = 10
		perProducer  = 10000
		totalItems   = producers * perProducer
		testDeadline = 5 * time.Second
	)

	q := NewQueue[int64](1024)
	var pushSum, popSum atomic.Int64
	var consumed atomic.Int64

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int64) {
			defer wg.Done()
			for i := int64(0); i < perProducer; i++ {
				v := base*perProducer + i
				for !q.Push(v) {
					runtime.Gosched()
				}
				pushSum.Add(v)
			}
		}(int64(p))
	}

	done := make(chan struct{})
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for consumed.Load() < totalItems {
				v, ok := q.Pop()
				if !ok {
					runtime.Gosched()
					continue
				}
				popSum.Add(v)
				consumed.Add(1)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(testDeadline):
		t.Fatalf("stress test timed out; consumed %d of %d", consumed.Load(), totalItems)
	}

	if pushSum.Load() != popSum.Load() {
		t.Errorf("checksum mismatch: pushed %d, popped %d", pushSum.Load(), popSum.Load())
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after stress: len = %d", q.Len())
	}
}

func TestQueuePopReleasesReference(t *testing.T) {
	q := NewQueue[*int](2)
	v := new(int)
	q.Push(v)
	if got, ok := q.Pop(); !ok || got != v {
		t.Fatal("round trip failed")
	}
	// The vacated cell must not retain the pointer.
	if q.cells[0].data != nil {
		t.Error("popped cell still holds a reference")
	}
}
