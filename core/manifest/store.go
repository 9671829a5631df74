package manifest

import (
	"sync/atomic"

	"manifest-resolver/core/metrics"
)

// Store holds the currently served snapshot. Swapping is atomic: a caller that
// pinned a snapshot keeps reading it even after a newer one is swapped in.
type Store struct {
	current atomic.Pointer[Snapshot]
	metrics *metrics.Metrics
}

// NewStore creates a store with no snapshot loaded.
func NewStore(m *metrics.Metrics) *Store {
	return &Store{metrics: m}
}

// Snapshot pins the current snapshot.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrStoreUnavailable
	}
	return snap, nil
}

// Swap installs next and returns the snapshot it replaced, if any.
// The caller owns the returned snapshot and should close it once drained.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	prev := s.current.Swap(next)
	previous := ""
	if prev != nil {
		previous = prev.Version()
	}
	if next != nil {
		s.metrics.RecordSwap(previous, next.Version())
	}
	return prev
}

// Version returns the version of the current snapshot, or "" if none is loaded.
func (s *Store) Version() string {
	if snap := s.current.Load(); snap != nil {
		return snap.Version()
	}
	return ""
}
