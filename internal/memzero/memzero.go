// File: internal/memzero/memzero.go
// Package memzero implements the secure-erasure primitive.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Every release path in this library funnels through Zero. The overwrite is
// followed by runtime.KeepAlive on the backing array so the stores have an
// observable reader and cannot be eliminated as dead by the compiler.

package memzero

import "runtime"

// Zero overwrites b with zeros.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b[0])
}
