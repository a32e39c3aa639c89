// File: pool/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Statistics snapshots for both pool implementations.

package pool

// PoolStats is a consistent snapshot of the standard pool's counters, taken
// under the pool lock.
type PoolStats struct {
	Available      int
	TotalAllocated uint64
	TotalAcquired  uint64
	TotalReturned  uint64
	BufferSize     int
	MaxPoolSize    int
}

// FastPoolStats is an eventually-consistent snapshot of the fast pool's
// counters. Individual counters are monotonic but may be read a few
// instructions apart; Available can transiently drift from the true queue
// occupancy.
type FastPoolStats struct {
	Available int
	Allocated uint64
	Acquired  uint64
	Returned  uint64
	CacheHits uint64
}

// CacheHitRate is the fraction of acquisitions served by a thread-local
// cache.
func (s FastPoolStats) CacheHitRate() float64 {
	if s.Acquired == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.Acquired)
}

// PoolHitRate is the fraction of acquisitions served by any tier other than
// fresh allocation.
func (s FastPoolStats) PoolHitRate() float64 {
	if s.Acquired == 0 {
		return 0
	}
	return float64(s.Acquired-s.Allocated) / float64(s.Acquired)
}
