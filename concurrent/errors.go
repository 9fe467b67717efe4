package concurrent

import "errors"

// ErrTerminated is returned by Slot.TryGet/WaitGet, and by what is built
// on top of a Slot (AckLatch.Wait, LookAheadCache.Pop), once Terminate
// has been called. Queue and BoundedQueue have no termination and never
// return it. Callers should treat it as a clean shutdown signal.
var ErrTerminated = errors.New("concurrent: terminated")
