// Package api
// Author: momentics <momentics@gmail.com>
//
// Observability contracts shared by pools and the control registry.

package api

// StatsSource exposes a point-in-time snapshot of counters as a flat map.
// Both pool implementations satisfy this; the control registry pulls from it.
//
// Snapshots from lock-free sources are eventually consistent: individual
// counters are monotonic, but a snapshot may mix values read a few
// instructions apart.
type StatsSource interface {
	StatsMap() map[string]any
}
