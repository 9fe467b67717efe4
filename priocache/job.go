package priocache

// Job is a caller-supplied, ordered sequence of keys describing the
// near future: the order a consumer is expected to request them in.
// LookAheadCache.Pop drains a Job to tell worker goroutines what to
// precompute next.
//
// Implementations need not be safe for concurrent use; a Job is only
// ever touched while LookAheadCache holds its worker mutex. See
// priocache/joblist for a slice-backed implementation and
// priocache/redisjob for one backed by a Redis list.
type Job[K any] interface {
	// IsEmpty reports whether the job has been fully consumed.
	IsEmpty() bool
	// Next returns and consumes the next key. Next is never called
	// while IsEmpty reports true.
	Next() K
	// Clear discards the remainder of the job, as if fully consumed.
	Clear()
}

// emptyJob is the zero Job: always exhausted. It is the LookAheadCache's
// initial current job, so Pop has no key to hand out until a real one
// arrives via SubmitJob (and blocks until then), mirroring the C++ source's reliance on WorkUnitItr
// being default-constructed empty.
type emptyJob[K any] struct{}

func (emptyJob[K]) IsEmpty() bool { return true }
func (emptyJob[K]) Next() K       { var zero K; return zero }
func (emptyJob[K]) Clear()        {}
