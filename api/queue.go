// Package api
// Author: momentics <momentics@gmail.com>
//
// Lock-free queue contract for idle-buffer storage.

package api

// Queue is a bounded, non-blocking FIFO contract.
// Implementations must be safe for concurrent producers and consumers.
type Queue[T any] interface {
	// Push adds an item, returns false if full.
	Push(item T) bool
	// Pop removes the oldest item, returns false if empty.
	Pop() (T, bool)
	// Len returns the current number of items.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
}
