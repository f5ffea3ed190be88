package resilient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/kv"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/memory"
	"github.com/edutrack-hub/edutrack/pkg/circuitbreaker"
)

// flakyStore fails the first failures calls with failErr, then delegates
// to an in-memory store.
type flakyStore struct {
	inner    kv.Store
	failures int
	failErr  error
	calls    int
}

func newFlakyStore(failures int, failErr error) *flakyStore {
	return &flakyStore{
		inner:    memory.NewStore(),
		failures: failures,
		failErr:  failErr,
	}
}

func (f *flakyStore) fail() error {
	f.calls++
	if f.calls <= f.failures {
		return f.failErr
	}
	return nil
}

func (f *flakyStore) Get(ctx context.Context, key string, dest any) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.Get(ctx, key, dest)
}

func (f *flakyStore) Set(ctx context.Context, key string, value any) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if err := f.fail(); err != nil {
		return err
	}
	return f.inner.Delete(ctx, key)
}

func (f *flakyStore) Ping(ctx context.Context) error { return nil }
func (f *flakyStore) Close() error                   { return nil }

func TestStore_PassesThroughWhenHealthy(t *testing.T) {
	store := Wrap(memory.NewStore(), nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "subject:1", map[string]string{"name": "Calculus"}))

	var got map[string]string
	require.NoError(t, store.Get(ctx, "subject:1", &got))
	assert.Equal(t, "Calculus", got["name"])

	require.NoError(t, store.Delete(ctx, "subject:1"))
	assert.ErrorIs(t, store.Get(ctx, "subject:1", &got), kv.ErrKeyNotFound)
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	inner := newFlakyStore(2, errors.New("connection reset"))
	store := Wrap(inner, nil)
	ctx := context.Background()

	err := store.Set(ctx, "task:1", "read chapter 4")

	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, circuitbreaker.StateClosed, store.State())
}

func TestStore_NotFoundIsNotRetried(t *testing.T) {
	inner := newFlakyStore(100, kv.ErrKeyNotFound)
	store := Wrap(inner, nil)
	ctx := context.Background()

	var dest string
	err := store.Get(ctx, "missing", &dest)

	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	assert.Equal(t, 1, inner.calls, "a key miss is deterministic, retrying it wastes time")
	assert.Equal(t, circuitbreaker.StateClosed, store.State())
}

func TestStore_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	inner := newFlakyStore(1000, errors.New("dial tcp: connection refused"))
	store := Wrap(inner, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Set(ctx, "task:1", "x")
		require.Error(t, err)
	}

	require.Equal(t, circuitbreaker.StateOpen, store.State())

	callsBefore := inner.calls
	err := store.Set(ctx, "task:1", "x")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, callsBefore, inner.calls, "an open circuit must not reach the backend")
}
