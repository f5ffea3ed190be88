// Package resilient wraps a kv.Store with retries and a circuit breaker.
// Used around the Redis and PostgreSQL backends; the in-memory store does
// not need it.
package resilient

import (
	"context"
	"errors"

	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/kv"
	"github.com/edutrack-hub/edutrack/pkg/circuitbreaker"
	"github.com/edutrack-hub/edutrack/pkg/logger"
	"github.com/edutrack-hub/edutrack/pkg/retry"
)

// Store decorates an inner kv.Store. Every call goes through the circuit
// breaker; transient failures are retried with backoff. A missing key is a
// domain answer, not a failure, and is never retried or counted against
// the breaker.
type Store struct {
	inner   kv.Store
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// Wrap decorates the inner store.
func Wrap(inner kv.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}

	onStateChange := func(name string, from, to circuitbreaker.State) {
		log.Warn("record store circuit state changed",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	}
	breaker := circuitbreaker.StoreBreaker(onStateChange, circuitbreaker.WithIsFailure(isTransient))

	return &Store{
		inner:   inner,
		retrier: retry.StoreRetrier(),
		breaker: breaker,
	}
}

// Get retrieves and decodes the value stored under key.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	return s.execute(ctx, func(ctx context.Context) error {
		return s.inner.Get(ctx, key, dest)
	})
}

// Set encodes and stores the value under key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.execute(ctx, func(ctx context.Context) error {
		return s.inner.Set(ctx, key, value)
	})
}

// Delete removes the value stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.execute(ctx, func(ctx context.Context) error {
		return s.inner.Delete(ctx, key)
	})
}

// Ping checks connectivity. Not retried: health checks report the current
// state, a masked failure defeats their purpose.
func (s *Store) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner store's resources.
func (s *Store) Close() error {
	return s.inner.Close()
}

// State exposes the breaker state for diagnostics.
func (s *Store) State() circuitbreaker.State {
	return s.breaker.State()
}

func (s *Store) execute(ctx context.Context, op func(ctx context.Context) error) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.retrier.Do(ctx, func(ctx context.Context) error {
			err := op(ctx)
			if err == nil {
				return nil
			}
			if !isTransient(err) {
				return retry.Permanent(err)
			}
			return retry.Retryable(err)
		})
	})
}

// isTransient reports whether the error is worth retrying. Key misses and
// codec failures are deterministic; only connection trouble is transient.
func isTransient(err error) bool {
	if errors.Is(err, kv.ErrKeyNotFound) ||
		errors.Is(err, kv.ErrKeyEmpty) ||
		errors.Is(err, kv.ErrSerialization) {
		return false
	}
	return true
}
