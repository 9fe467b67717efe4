package concurrent

import (
	"context"
	"sync"
)

// Slot is a single-cell, thread-safe handoff for one value of type T.
//
// A Slot is either empty, holding a value, or terminated. Setting a value
// overwrites any previous unread value. Once terminated, every current and
// future getter fails with ErrTerminated.
type Slot[T any] struct {
	mu         sync.Mutex
	cond       *sync.Cond
	value      T
	set        bool
	terminated bool
}

// NewSlot returns an empty Slot.
func NewSlot[T any]() *Slot[T] {
	s := &Slot[T]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// NewSlotWith returns a Slot pre-populated with v.
func NewSlotWith[T any](v T) *Slot[T] {
	s := NewSlot[T]()
	s.value = v
	s.set = true
	return s
}

// Set installs v, overwriting any unread value, and wakes one waiter.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.set = true
	s.mu.Unlock()
	s.cond.Signal()
}

// TryGet returns the current value without blocking. ok is false if the
// slot is empty. err is ErrTerminated if the slot has been terminated,
// in which case ok is always false and the zero value is returned.
func (s *Slot[T]) TryGet() (v T, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		var zero T
		return zero, false, ErrTerminated
	}
	if !s.set {
		var zero T
		return zero, false, nil
	}
	v = s.value
	var zero T
	s.value = zero
	s.set = false
	return v, true, nil
}

// WaitGet blocks until a value is set or the slot is terminated, or ctx is
// done. Termination is re-checked under the lock after every wake, so
// spurious wakeups never leak a value read past termination.
func (s *Slot[T]) WaitGet(ctx context.Context) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		var zero T
		return zero, ErrTerminated
	}

	if ctx != nil && ctx.Done() != nil {
		return s.waitGetCtx(ctx)
	}

	for !s.set {
		s.cond.Wait()
		if s.terminated {
			var zero T
			return zero, ErrTerminated
		}
	}
	return s.unset()
}

// waitGetCtx handles the ctx.Done() race by running a small helper
// goroutine that wakes the Cond when ctx is cancelled; mu is held on entry.
func (s *Slot[T]) waitGetCtx(ctx context.Context) (T, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			s.cond.Broadcast()
		case <-stop:
		}
	}()

	for !s.set && !s.terminated {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		s.cond.Wait()
	}
	if s.terminated {
		var zero T
		return zero, ErrTerminated
	}
	return s.unset()
}

func (s *Slot[T]) unset() (T, error) {
	v := s.value
	var zero T
	s.value = zero
	s.set = false
	return v, nil
}

// Terminate sets (or clears) the terminated flag and wakes every waiter.
func (s *Slot[T]) Terminate(v bool) {
	s.mu.Lock()
	s.terminated = v
	s.mu.Unlock()
	s.cond.Broadcast()
}

// TerminateAll is shorthand for Terminate(true).
func (s *Slot[T]) TerminateAll() {
	s.Terminate(true)
}
