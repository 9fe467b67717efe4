// Package redisjob provides a priocache.Job implementation backed by a
// Redis list, for look-ahead sequences produced by another process (a
// scheduler, a crawler frontier) rather than held in memory. It depends
// on github.com/redis/go-redis/v9, the same client the wider toolkit's
// cache/redis package builds on.
package redisjob

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/everyday-items/lookaheadcache/util/retry"
)

// Job drains a Redis list with LPOP, satisfying priocache.Job[string].
// Keys are prefetched in batches to avoid a round trip per Next call.
type Job struct {
	client redis.UniversalClient
	ctx    context.Context
	key    string
	batch  int64

	buffer []string
	done   bool
}

// New returns a Job draining listKey, prefetching batchSize keys at a
// time (minimum 1). ctx bounds every Redis call IsEmpty makes (Clear
// makes none); pass context.Background() for a worker-lifetime Job.
func New(ctx context.Context, client redis.UniversalClient, listKey string, batchSize int64) *Job {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Job{client: client, ctx: ctx, key: listKey, batch: batchSize}
}

// IsEmpty reports whether the list is exhausted, refilling the local
// buffer from Redis first if it is currently empty.
func (j *Job) IsEmpty() bool {
	if len(j.buffer) > 0 {
		return false
	}
	if j.done {
		return true
	}
	j.refill()
	return len(j.buffer) == 0
}

// refill fetches up to j.batch keys, retrying any failed call up to 3
// attempts in all, 20ms apart (redis.Nil is not a failure: it just means
// the list is currently empty). Any error left after that marks the Job
// exhausted.
func (j *Job) refill() {
	var vals []string
	err := retry.DoWithContext(j.ctx, func() error {
		v, err := j.client.LPopCount(j.ctx, j.key, int(j.batch)).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		vals = v
		return err
	}, retry.Attempts(3), retry.Delay(20*time.Millisecond))

	if err != nil || len(vals) == 0 {
		j.done = true
		return
	}
	j.buffer = vals
}

// Next returns and consumes the next key. Callers must check IsEmpty
// first; Next panics on an already-exhausted Job, same contract as
// priocache.Job documents.
func (j *Job) Next() string {
	k := j.buffer[0]
	j.buffer = j.buffer[1:]
	return k
}

// Clear discards any buffered keys and marks this Job exhausted. It does
// not delete the underlying Redis key, since other Jobs may still be
// draining the same list.
func (j *Job) Clear() {
	j.buffer = nil
	j.done = true
}
