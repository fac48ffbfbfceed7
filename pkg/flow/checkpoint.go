package flow

import (
	"context"
	"errors"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/aretw0/graft/pkg/core"
	"github.com/aretw0/graft/pkg/ports"
)

// Checkpoint shares best-known solutions between independent pipeline runs
// through a ports.SampleStore. When the incoming state already carries
// samples, the stage persists them (keeping whichever set has the better
// first-record energy); when it carries none, the stage seeds the state from
// the store if a previous run left something behind.
//
// Store failures are reported as RunnableErrors; a missing key is not a
// failure.
type Checkpoint struct {
	core.Base
	store ports.SampleStore
	key   string
}

// NewCheckpoint builds a checkpoint stage over store, keyed by key.
func NewCheckpoint(store ports.SampleStore, key string) *Checkpoint {
	return &Checkpoint{Base: core.NewBase("Checkpoint(" + key + ")"), store: store, key: key}
}

// Next implements core.Runnable.
func (r *Checkpoint) Next(ctx context.Context, s *core.State) (*core.State, error) {
	samples := s.Samples()

	if samples == nil || samples.Len() == 0 {
		stored, err := r.store.Get(ctx, r.key)
		if errors.Is(err, ports.ErrNotFound) {
			return s, nil
		}
		if err != nil {
			return nil, &core.RunnableError{Message: "checkpoint load failed", State: s, Err: err}
		}
		return s.Updated(core.Fields{"samples": stored}), nil
	}

	keep := samples
	if stored, err := r.store.Get(ctx, r.key); err == nil {
		if better(stored, samples) {
			keep = stored
		}
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, &core.RunnableError{Message: "checkpoint load failed", State: s, Err: err}
	}

	if err := r.store.Put(ctx, r.key, keep); err != nil {
		return nil, &core.RunnableError{Message: "checkpoint store failed", State: s, Err: err}
	}
	if keep != samples {
		return s.Updated(core.Fields{"samples": keep}), nil
	}
	return s, nil
}

// better reports whether a's best record beats b's.
func better(a, b *bqm.SampleSet) bool {
	ra, okA := a.First()
	rb, okB := b.First()
	if !okA {
		return false
	}
	if !okB {
		return true
	}
	return ra.Energy < rb.Energy
}
