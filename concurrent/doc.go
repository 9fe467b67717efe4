// Package concurrent provides blocking coordination primitives used to hand
// work between goroutines: a single-value Slot, an unbounded Queue and a
// fixed-capacity BoundedQueue.
//
// All three are built on a sync.Mutex plus one or more sync.Cond, following
// the same shape as util/poolx's PriorityQueue.PopWait in the wider toolkit:
// no lock-free tricks, correctness comes from one mutex per resource.
//
// Basic usage:
//
//	s := concurrent.NewSlot[int]()
//	go func() {
//	    v, err := s.WaitGet(context.Background())
//	    ...
//	}()
//	s.Set(42)
package concurrent
