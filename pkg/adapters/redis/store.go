// Package redis provides a Redis-backed ports.SampleStore, so best-known
// solutions survive a single process and can be shared between workers.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/ports"
)

// Store implements ports.SampleStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for stored sample sets.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "graft:samples:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Put persists the sample set as JSON.
func (s *Store) Put(ctx context.Context, key string, ss *bqm.SampleSet) error {
	data, err := json.Marshal(ss)
	if err != nil {
		return fmt.Errorf("failed to marshal sample set: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store sample set: %w", err)
	}
	return nil
}

// Get retrieves and decodes the sample set for key.
func (s *Store) Get(ctx context.Context, key string) (*bqm.SampleSet, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sample set: %w", err)
	}

	var ss bqm.SampleSet
	if err := json.Unmarshal(data, &ss); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sample set: %w", err)
	}
	return &ss, nil
}

// Delete removes the sample set for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete sample set: %w", err)
	}
	return nil
}
