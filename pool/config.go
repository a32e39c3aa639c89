// File: pool/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool configuration and workload presets.

package pool

import (
	"fmt"

	"github.com/momentics/secbuf/buffer"
)

// PoolConfig controls the buffers a pool manufactures and retains.
type PoolConfig struct {
	// BufferSize is the capacity of every buffer the pool manufactures.
	BufferSize int
	// MaxPoolSize caps the number of idle buffers retained.
	MaxPoolSize int
	// MinPoolSize is the number of buffers pre-warmed at construction.
	MinPoolSize int
}

// DefaultConfig suits general protocol work: 8 KiB buffers, up to 64 idle.
func DefaultConfig() PoolConfig {
	return PoolConfig{BufferSize: 8192, MaxPoolSize: 64, MinPoolSize: 8}
}

// EmbeddedConfig keeps the footprint small for constrained deployments.
func EmbeddedConfig() PoolConfig {
	return PoolConfig{BufferSize: 1024, MaxPoolSize: 16, MinPoolSize: 2}
}

// ServerConfig trades memory for throughput on large concurrent workloads.
func ServerConfig() PoolConfig {
	return PoolConfig{BufferSize: 65536, MaxPoolSize: 256, MinPoolSize: 32}
}

// MTUConfig sizes buffers to a standard Ethernet MTU frame.
func MTUConfig() PoolConfig {
	return PoolConfig{BufferSize: 1500, MaxPoolSize: 128, MinPoolSize: 16}
}

// normalized clamps negative fields and orders MinPoolSize <= MaxPoolSize.
// An oversized BufferSize panics: it is a configuration mistake, consistent
// with buffer.New.
func (c PoolConfig) normalized() PoolConfig {
	if c.BufferSize > buffer.MaxSize {
		panic(fmt.Sprintf("secbuf: pool buffer size %d exceeds maximum %d", c.BufferSize, buffer.MaxSize))
	}
	if c.BufferSize < 0 {
		c.BufferSize = 0
	}
	if c.MaxPoolSize < 0 {
		c.MaxPoolSize = 0
	}
	if c.MinPoolSize < 0 {
		c.MinPoolSize = 0
	}
	if c.MinPoolSize > c.MaxPoolSize {
		c.MinPoolSize = c.MaxPoolSize
	}
	return c
}
