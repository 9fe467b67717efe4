package priocache

import (
	"log/slog"
	"time"

	"github.com/everyday-items/lookaheadcache/internal/logging"
	"github.com/everyday-items/lookaheadcache/internal/metrics"
)

// Weight is the constraint on the cache's weight type: an unsigned
// integral, additive, used both per-entry and as the total budget.
type Weight interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type weightedValue[W Weight, V any] struct {
	weight W
	value  V
}

// Engine is the single-threaded bookkeeping core of the look-ahead
// priority cache: it decides admission, eviction order, and pending vs.
// discardable bookkeeping. Callers must serialize access externally (see
// LookAheadCache, which does so with a mutex); Engine itself holds no
// lock.
type Engine[K comparable, W Weight, V any] struct {
	maxWeight   W
	store       map[K]weightedValue[W, V]
	pending     []K
	discardable []K

	log     *slog.Logger
	metrics metrics.Recorder
}

// config holds the settings shared by NewEngine and NewLookAheadCache.
type config[K comparable, W Weight, V any] struct {
	log     *slog.Logger
	metrics metrics.Recorder
	clock   func() time.Time
}

// Option configures an Engine or a LookAheadCache. Both constructors
// accept the same Option type, the functional-options shape used by
// cache/local.Options and util/poolx in the wider toolkit.
type Option[K comparable, W Weight, V any] func(*config[K, W, V])

// WithLogger overrides the logger used for debug tracing of
// admission, eviction, and job-supersession decisions. Defaults to
// logging.Default().
func WithLogger[K comparable, W Weight, V any](l *slog.Logger) Option[K, W, V] {
	return func(c *config[K, W, V]) { c.log = l }
}

// WithMetrics attaches a metrics.Recorder. Defaults to a no-op.
func WithMetrics[K comparable, W Weight, V any](m metrics.Recorder) Option[K, W, V] {
	return func(c *config[K, W, V]) { c.metrics = m }
}

// WithClock injects a time source. Defaults to time.Now. The cache
// itself carries no TTL or expiry. A LookAheadCache stores the clock but
// nothing reads it, and Engine ignores it: log records carry the slog
// handler's own timestamps.
func WithClock[K comparable, W Weight, V any](now func() time.Time) Option[K, W, V] {
	return func(c *config[K, W, V]) { c.clock = now }
}

func newConfig[K comparable, W Weight, V any](opts ...Option[K, W, V]) *config[K, W, V] {
	c := &config[K, W, V]{
		log:     logging.Default(),
		metrics: metrics.Noop(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// NewEngine returns an Engine with the given total weight budget.
func NewEngine[K comparable, W Weight, V any](maxWeight W, opts ...Option[K, W, V]) *Engine[K, W, V] {
	c := newConfig(opts...)
	return &Engine[K, W, V]{
		maxWeight: maxWeight,
		store:     make(map[K]weightedValue[W, V]),
		log:       c.log,
		metrics:   c.metrics,
	}
}

// Get looks up k's value. ok is false if k is not stored.
func (e *Engine[K, W, V]) Get(k K) (V, bool) {
	wv, ok := e.store[k]
	return wv.value, ok
}

// Contains reports whether k has a stored value.
func (e *Engine[K, W, V]) Contains(k K) bool {
	_, ok := e.store[k]
	return ok
}

// Pending reports whether k is in the pending list.
func (e *Engine[K, W, V]) Pending(k K) bool {
	return indexOf(e.pending, k) >= 0
}

// Weight returns the sum of weights of every stored entry.
func (e *Engine[K, W, V]) Weight() W {
	var sum W
	for _, wv := range e.store {
		sum += wv.weight
	}
	return sum
}

// contiguousWeight sums the weights of the longest prefix of pending
// whose keys are all currently stored.
func (e *Engine[K, W, V]) contiguousWeight() W {
	var sum W
	for _, k := range e.pending {
		wv, ok := e.store[k]
		if !ok {
			return sum
		}
		sum += wv.weight
	}
	return sum
}

// Full reports whether enough of the near future is already resident:
// either the budget is zero, or the contiguous prefix of pending already
// stored exceeds it.
func (e *Engine[K, W, V]) Full() bool {
	return e.maxWeight == 0 || e.contiguousWeight() > e.maxWeight
}

// DumpKeys returns a snapshot of every stored key, in unspecified order.
func (e *Engine[K, W, V]) DumpKeys() []K {
	keys := make([]K, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	return keys
}

// SetMaxWeight changes the total weight budget.
func (e *Engine[K, W, V]) SetMaxWeight(w W) {
	e.maxWeight = w
}

// Update records that k has been requested. It returns:
//
//   - Full, if the near future is already resident (no state change).
//   - NotNeeded, if another worker already owns k, or it is already
//     stored; k still moves to the tail of pending.
//   - Needed, if the caller now owns producing k's value.
func (e *Engine[K, W, V]) Update(k K) UpdateStatus {
	if e.Full() {
		return Full
	}
	wasKnown := removeFromSlice(&e.pending, k) || removeFromSlice(&e.discardable, k)
	e.pending = append(e.pending, k)
	if wasKnown || e.Contains(k) {
		e.log.Debug("priocache: update not needed", "key", k)
		return NotNeeded
	}
	e.log.Debug("priocache: update needed", "key", k)
	return Needed
}

// Put admits (k, w, v). It returns (true, nil) on success, (false, nil)
// if the cache is too full to admit it (the speculative value is
// discarded), or a non-nil error for the two programmer-error cases:
// ErrInvalidWeight (w == 0) and ErrAlreadyPresent (k already stored).
func (e *Engine[K, W, V]) Put(k K, w W, v V) (bool, error) {
	if w == 0 {
		return false, ErrInvalidWeight
	}
	if e.Contains(k) {
		return false, ErrAlreadyPresent
	}

	if e.Full() {
		removeFromSlice(&e.pending, k)
		removeFromSlice(&e.discardable, k)
		e.metrics.IncFull()
		e.log.Debug("priocache: cache full, discarding", "key", k)
		return false, nil
	}

	if e.Weight()+w > e.maxWeight {
		e.makeRoomFor(k, w)
	}

	if e.Full() {
		e.metrics.IncFull()
		return false, nil
	}

	e.store[k] = weightedValue[W, V]{weight: w, value: v}
	if !e.Pending(k) && indexOf(e.discardable, k) < 0 {
		e.discardable = append(e.discardable, k)
	}
	e.metrics.IncAdmitted()
	e.metrics.ObserveWeight(float64(e.Weight()))
	e.log.Debug("priocache: admitted", "key", k, "weight", w)
	return true, nil
}

// makeRoomFor evicts discardable and trailing-unstored-pending keys,
// newest first, until (k, w) would fit within the weight budget.
func (e *Engine[K, W, V]) makeRoomFor(k K, w W) {
	firstMissing := len(e.pending)
	for i, id := range e.pending {
		if !e.Contains(id) {
			firstMissing = i
			break
		}
	}

	victims := make([]K, 0, len(e.pending)-firstMissing+len(e.discardable))
	victims = append(victims, e.pending[firstMissing:]...)
	victims = append(victims, e.discardable...)
	reverseSlice(victims)

	for _, victim := range victims {
		e.evict(victim)
		if e.Weight()+w <= e.maxWeight {
			break
		}
	}
}

// evict removes a key from the store and from pending/discardable.
func (e *Engine[K, W, V]) evict(k K) {
	if _, ok := e.store[k]; !ok {
		return
	}
	delete(e.store, k)
	removeFromSlice(&e.pending, k)
	removeFromSlice(&e.discardable, k)
	e.metrics.IncEvicted()
	e.log.Debug("priocache: evicted", "key", k)
}

// DiscardPending moves every pending key to the tail of discardable and
// clears pending. Weight is unchanged; no key in store is removed.
func (e *Engine[K, W, V]) DiscardPending() {
	if len(e.pending) == 0 {
		return
	}
	e.discardable = append(e.discardable, e.pending...)
	e.pending = e.pending[:0]
}

func indexOf[K comparable](s []K, k K) int {
	for i, v := range s {
		if v == k {
			return i
		}
	}
	return -1
}

// removeFromSlice removes the first occurrence of k from *s, preserving
// order of the rest. It reports whether anything was removed.
func removeFromSlice[K comparable](s *[]K, k K) bool {
	i := indexOf(*s, k)
	if i < 0 {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

func reverseSlice[K any](s []K) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
