// Package memstore is an in-memory countstore.Store for tests and
// short-lived tooling.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/statlm/pkg/statlm/countstore"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// Store is an in-memory implementation of countstore.Store.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]countstore.Snapshot
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{snapshots: make(map[string]countstore.Snapshot)}
}

// Close implements countstore.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot stores a deep copy keyed by snapshot ID.
func (s *Store) SaveSnapshot(ctx context.Context, snap countstore.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.ID] = copySnapshot(snap)
	return nil
}

// LoadSnapshot returns a snapshot by ID.
func (s *Store) LoadSnapshot(ctx context.Context, id string) (countstore.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return countstore.Snapshot{}, fmt.Errorf("%w: snapshot %s", internalerr.ErrNotFound, id)
	}
	return copySnapshot(snap), nil
}

// ListSnapshots returns snapshot metadata ordered by ID, which for ULIDs is
// creation order.
func (s *Store) ListSnapshots(ctx context.Context) ([]countstore.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]countstore.Info, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		infos = append(infos, countstore.Info{ID: snap.ID, Order: snap.Order, CreatedAt: snap.CreatedAt})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func copySnapshot(snap countstore.Snapshot) countstore.Snapshot {
	out := snap
	out.Vocab = append([]countstore.TokenCount(nil), snap.Vocab...)
	out.Counts = make([]countstore.Entry, len(snap.Counts))
	for i, e := range snap.Counts {
		e.Context = append([]string(nil), e.Context...)
		out.Counts[i] = e
	}
	return out
}
