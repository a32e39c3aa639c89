// Package pool
// Author: momentics <momentics@gmail.com>
//
// Buffer pooling for secbuf: a mutex-based Pool and a lock-free,
// thread-cached FastPool, both recycling buffer.Buffer instances.
// Both pools enforce the same contract: a buffer is securely zeroed
// before it becomes reachable by any future acquirer, and acquisition
// never fails — a miss allocates.
// See standard.go and fast.go for implementation details.
package pool
