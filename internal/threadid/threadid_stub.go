//go:build !linux && !windows

// File: internal/threadid/threadid_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without a cheap thread-id syscall. All callers
// share identity 0, collapsing per-thread caches into a single slot.
// Correctness is unaffected; tier-1 scalability degrades.

package threadid

// Current returns a fixed identity on unsupported platforms.
func Current() uint64 {
	return 0
}
