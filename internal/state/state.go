// Package state holds the current snapshot of an entity store.
package state

import "sync"

// Store owns the current snapshot of a value type T. Mutation logic lives
// in the engines, which read the snapshot, compute a replacement
// functionally, and swap it in with Replace. The mutex is needed because
// Bubble Tea runs commands on their own goroutines.
type Store[T any] struct {
	mu   sync.RWMutex
	snap T
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{snap: initial}
}

// Get returns the current snapshot.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace atomically swaps the current snapshot for next.
func (s *Store[T]) Replace(next T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = next
}
