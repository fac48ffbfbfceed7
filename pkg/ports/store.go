package ports

import (
	"context"
	"errors"

	"github.com/aretw0/graft/pkg/bqm"
)

// ErrNotFound is returned when a key cannot be found in a SampleStore.
var ErrNotFound = errors.New("sample set not found")

// SampleStore persists sample sets keyed by problem, so independent pipeline
// runs over the same problem can share their best-known solutions.
//
// This is a cache, not engine state: the workflow core never depends on a
// store being present.
type SampleStore interface {
	// Put stores the sample set under key, replacing any previous value.
	Put(ctx context.Context, key string, ss *bqm.SampleSet) error

	// Get retrieves the sample set for key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (*bqm.SampleSet, error)

	// Delete removes the sample set for key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
