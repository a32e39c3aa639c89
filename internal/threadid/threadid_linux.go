//go:build linux

// File: internal/threadid/threadid_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread identity via gettid(2).

package threadid

import "golang.org/x/sys/unix"

// Current returns the OS identity of the thread running the caller.
// Goroutines migrate between threads, so the value is only a locality hint;
// callers that need a stable identity must pin with runtime.LockOSThread.
func Current() uint64 {
	return uint64(unix.Gettid())
}
