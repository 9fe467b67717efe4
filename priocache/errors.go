package priocache

import "errors"

var (
	// ErrInvalidWeight is returned by Engine.Put/LookAheadCache.Push when
	// called with a zero weight. A zero weight can never be admitted,
	// since weight is also the unit eviction budgets are measured in.
	ErrInvalidWeight = errors.New("priocache: weight must be non-zero")

	// ErrAlreadyPresent is returned by Engine.Put/LookAheadCache.Push when
	// the key already has a stored value.
	ErrAlreadyPresent = errors.New("priocache: key already present")
)
