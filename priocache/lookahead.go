package priocache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/everyday-items/lookaheadcache/concurrent"
)

// LookAheadCache wraps an Engine with the synchronization needed to
// drive a pool of worker goroutines: a cacheMutex protecting the Engine
// itself, a workerMutex serializing Pop across workers so they consume
// the current Job in order, and a Slot used to hand a new Job to
// whichever worker is between keys.
//
// Lock ordering is fixed and must never be reversed: a goroutine already
// holding workerMutex may acquire cacheMutex, but cacheMutex is never
// held while acquiring workerMutex.
type LookAheadCache[K comparable, W Weight, V any] struct {
	workerMutex sync.Mutex
	cacheMutex  sync.Mutex

	engine     *Engine[K, W, V]
	pendingJob *concurrent.Slot[Job[K]]
	currentJob Job[K] // only touched while workerMutex is held

	log   *slog.Logger
	clock func() time.Time
}

// NewLookAheadCache returns a LookAheadCache with the given total weight
// budget. It has no job until SubmitJob is called; any Pop issued before
// then blocks.
func NewLookAheadCache[K comparable, W Weight, V any](maxWeight W, opts ...Option[K, W, V]) *LookAheadCache[K, W, V] {
	c := newConfig(opts...)
	return &LookAheadCache[K, W, V]{
		engine:     NewEngine[K, W, V](maxWeight, WithLogger[K, W, V](c.log), WithMetrics[K, W, V](c.metrics)),
		pendingJob: concurrent.NewSlot[Job[K]](),
		currentJob: emptyJob[K]{},
		log:        c.log,
		clock:      c.clock,
	}
}

// Get looks up id's value.
func (c *LookAheadCache[K, W, V]) Get(id K) (V, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	return c.engine.Get(id)
}

// DumpKeys returns a snapshot of every stored key and the current total
// stored weight.
func (c *LookAheadCache[K, W, V]) DumpKeys() ([]K, W) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	return c.engine.DumpKeys(), c.engine.Weight()
}

// SetMaxWeight changes the total weight budget.
func (c *LookAheadCache[K, W, V]) SetMaxWeight(w W) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.engine.SetMaxWeight(w)
}

// SubmitJob hands job to the cache as the new description of the near
// future. It supersedes whatever job a worker is currently mid-way
// through: the next time a worker reaches Pop's top-level loop it will
// pick job up and discard the remainder of the superseded one's pending
// keys into discardable.
func (c *LookAheadCache[K, W, V]) SubmitJob(job Job[K]) {
	c.pendingJob.Set(job)
}

// Terminate wakes every blocked Pop with concurrent.ErrTerminated.
func (c *LookAheadCache[K, W, V]) Terminate() {
	c.pendingJob.Terminate(true)
}

// Push admits (id, weight, value) into the cache. See Engine.Put for the
// exact admission semantics and error conditions.
func (c *LookAheadCache[K, W, V]) Push(id K, weight W, value V) (bool, error) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	return c.engine.Put(id, weight, value)
}

// Pop blocks until there is a key a worker should precompute next,
// returning it. Workers call Pop, compute the value, call Push, and
// loop. Once Terminate has been called, every Pop returns
// concurrent.ErrTerminated, even if the current Job still has keys left.
//
// Only one worker is ever inside Pop's critical section at a time
// (workerMutex), so Jobs are always consumed in order by whichever
// worker reaches the top of the loop next.
func (c *LookAheadCache[K, W, V]) Pop(ctx context.Context) (K, error) {
	c.workerMutex.Lock()
	defer c.workerMutex.Unlock()

	for {
		id, err := c.nextWorkUnit(ctx)
		if err != nil {
			var zero K
			return zero, err
		}

		c.cacheMutex.Lock()
		status := c.engine.Update(id)
		c.cacheMutex.Unlock()

		switch status {
		case Full:
			c.log.Debug("priocache: cache full, dropping current job")
			c.currentJob.Clear()
		case NotNeeded:
			// keep consuming the job
		case Needed:
			return id, nil
		}
	}
}

// nextWorkUnit returns the next key to consider, first pulling in a
// fresher Job via updateJob if one has been submitted.
func (c *LookAheadCache[K, W, V]) nextWorkUnit(ctx context.Context) (K, error) {
	superseded, err := c.updateJob(ctx)
	if err != nil {
		var zero K
		return zero, err
	}
	if superseded {
		c.log.Debug("priocache: job superseded, discarding pending keys")
		c.cacheMutex.Lock()
		c.engine.DiscardPending()
		c.cacheMutex.Unlock()
	}
	return c.currentJob.Next(), nil
}

// updateJob swaps in a freshly submitted Job if one is waiting, blocking
// until the current job has something left if it's empty. It reports
// whether currentJob was replaced.
func (c *LookAheadCache[K, W, V]) updateJob(ctx context.Context) (bool, error) {
	job, ok, err := c.pendingJob.TryGet()
	if err != nil {
		return false, err
	}
	updated := ok
	if ok {
		c.currentJob = job
	}
	for c.currentJob.IsEmpty() {
		job, err := c.pendingJob.WaitGet(ctx)
		if err != nil {
			return false, err
		}
		c.currentJob = job
		updated = true
	}
	return updated, nil
}
