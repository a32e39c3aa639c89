//go:build windows

// File: internal/threadid/threadid_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows thread identity via GetCurrentThreadId.

package threadid

import "golang.org/x/sys/windows"

// Current returns the OS identity of the thread running the caller.
func Current() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
