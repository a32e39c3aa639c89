// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for pool observability.
// Registered stats sources are pulled on every snapshot; ad-hoc metrics
// can be set directly.

package control

import (
	"sync"
	"time"

	"github.com/momentics/secbuf/api"
)

// MetricsRegistry aggregates ad-hoc metrics and named stats sources.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	sources map[string]api.StatsSource
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
		sources: make(map[string]api.StatsSource),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Register attaches a stats source under a name; its counters appear in
// snapshots as "<name>.<field>". A pool is the typical source.
func (mr *MetricsRegistry) Register(name string, src api.StatsSource) {
	mr.mu.Lock()
	mr.sources[name] = src
	mr.mu.Unlock()
}

// Unregister removes a named source.
func (mr *MetricsRegistry) Unregister(name string) {
	mr.mu.Lock()
	delete(mr.sources, name)
	mr.mu.Unlock()
}

// Snapshot merges the ad-hoc metrics with a fresh pull of every registered
// source. Sources backed by lock-free counters yield eventually-consistent
// values.
func (mr *MetricsRegistry) Snapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	for name, src := range mr.sources {
		for k, v := range src.StatsMap() {
			out[name+"."+k] = v
		}
	}
	return out
}

// Updated returns the time of the last Set call.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
