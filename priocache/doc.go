// Package priocache implements a look-ahead priority cache: a mechanism
// that lets worker goroutines speculatively precompute entries for a
// caller-supplied sequence of future requests while respecting a fixed
// total-weight budget, so that by the time a consumer asks for a specific
// key the value is already resident.
//
// Engine is the single-threaded bookkeeping core (pending vs. discardable
// keys, eviction order, weight budget). LookAheadCache wraps an Engine with
// the mutexes and job-handoff slot needed to drive a pool of worker
// goroutines safely.
//
// Basic usage:
//
//	cache := priocache.NewLookAheadCache[string, uint64, []byte](1 << 20)
//	cache.SubmitJob(joblist.New("a", "b", "c"))
//
//	// worker goroutine:
//	for {
//	    key, err := cache.Pop(ctx)
//	    if errors.Is(err, concurrent.ErrTerminated) {
//	        return
//	    }
//	    value := compute(key)
//	    cache.Push(key, weightOf(value), value)
//	}
//
//	// consumer:
//	if v, ok := cache.Get("b"); ok {
//	    use(v)
//	}
package priocache
