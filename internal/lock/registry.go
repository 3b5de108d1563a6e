// Package lock provides the per-user lock registry that serializes balance
// mutations for a single user while leaving other users untouched.
package lock

import "sync"

// Registry hands out exactly one mutex per user key. Handles are created
// lazily on first use and kept for the lifetime of the registry; key
// cardinality is bounded by the user population, so entries are never evicted.
//
// The registry is meant to be owned by the engine that needs it, not held as
// package-level state.
type Registry struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func NewRegistry() *Registry { return &Registry{} }

// For returns the mutex owned by key, allocating it on first access.
// Concurrent first access for the same key always converges on one handle:
// LoadOrStore discards all but one of the racing allocations.
func (r *Registry) For(key int64) *sync.Mutex {
	m, _ := r.locks.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}
