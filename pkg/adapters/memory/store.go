// Package memory provides an in-memory ports.SampleStore, used as the
// default cache and as the reference implementation for the store contract.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/ports"
)

// Store implements ports.SampleStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*bqm.SampleSet
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]*bqm.SampleSet)}
}

// Put stores the sample set under key. Sample sets are immutable by
// convention, so the pointer is stored as-is.
func (s *Store) Put(ctx context.Context, key string, ss *bqm.SampleSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = ss
	return nil
}

// Get retrieves the sample set for key.
func (s *Store) Get(ctx context.Context, key string) (*bqm.SampleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ss, ok := s.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return ss, nil
}

// Delete removes the sample set for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
