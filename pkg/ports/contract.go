package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/graft/pkg/bqm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSampleStoreContract runs a suite of tests to verify that a SampleStore
// implementation adheres to the defined interface contract.
func RunSampleStoreContract(t *testing.T, store SampleStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	ss := bqm.FromRecords(
		[]string{"a", "b"},
		[]bqm.Record{{Sample: map[string]int{"a": 1, "b": -1}, Energy: -1, NumOccurrences: 2}},
		map[string]any{"solver": "contract"},
	)

	t.Run("Put and Get", func(t *testing.T) {
		err := store.Put(ctx, key, ss)
		require.NoError(t, err, "Put should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		require.NotNil(t, loaded)

		assert.Equal(t, ss.Variables(), loaded.Variables())
		first, ok := loaded.First()
		require.True(t, ok)
		assert.Equal(t, -1.0, first.Energy)
		assert.Equal(t, map[string]int{"a": 1, "b": -1}, first.Sample)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		better := bqm.FromRecords(
			[]string{"a", "b"},
			[]bqm.Record{{Sample: map[string]int{"a": -1, "b": 1}, Energy: -3, NumOccurrences: 1}},
			nil,
		)
		require.NoError(t, store.Put(ctx, key, better))

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		first, ok := loaded.First()
		require.True(t, ok)
		assert.Equal(t, -3.0, first.Energy)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, ss))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound, "Get after Delete should return ErrNotFound")

		// Deleting again must stay idempotent.
		assert.NoError(t, store.Delete(ctx, key))
	})
}
