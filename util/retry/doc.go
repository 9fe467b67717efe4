// Package retry provides retry functionality with exponential backoff.
//
// It supports configurable retry attempts, delays, and custom retry conditions.
//
// Basic usage:
//
//	err := retry.Do(func() error {
//	    return someOperation()
//	}, retry.Attempts(3), retry.Delay(time.Second))
//
// With exponential backoff:
//
//	err := retry.Do(func() error {
//	    return httpCall()
//	}, retry.DelayType(retry.ExponentialBackoff),
//	    retry.Delay(time.Second),
//	    retry.MaxDelay(time.Minute),
//	    retry.Multiplier(2))
package retry
