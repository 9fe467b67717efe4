package priocache

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Loader collapses concurrent requests for the same missing key into a
// single compute call, the same shape as cache/redis.StableCache's
// GetOrLoad in the wider toolkit, but built on golang.org/x/sync's
// singleflight.Group instead of the teacher's hand-rolled one, since this
// is a pure cache-miss collapse with no panic-recovery requirements.
type Loader[K comparable, W Weight, V any] struct {
	cache *LookAheadCache[K, W, V]
	group singleflight.Group
}

// NewLoader returns a Loader fronting cache.
func NewLoader[K comparable, W Weight, V any](cache *LookAheadCache[K, W, V]) *Loader[K, W, V] {
	return &Loader[K, W, V]{cache: cache}
}

// LoadMissing returns id's value. If it is not already stored, compute is
// invoked to produce it and the result is admitted with weight via
// Push. Concurrent callers requesting the same id share one compute
// call and one Push.
func (l *Loader[K, W, V]) LoadMissing(ctx context.Context, id K, weight W, compute func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := l.cache.Get(id); ok {
		return v, nil
	}

	key := fmt.Sprintf("%v", id)
	result, err, _ := l.group.Do(key, func() (any, error) {
		if v, ok := l.cache.Get(id); ok {
			return v, nil
		}
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := l.cache.Push(id, weight, value); err != nil && !errors.Is(err, ErrAlreadyPresent) {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Forget drops any in-flight call for id, so the next LoadMissing starts
// a fresh compute rather than joining a stale one.
func (l *Loader[K, W, V]) Forget(id K) {
	l.group.Forget(fmt.Sprintf("%v", id))
}
