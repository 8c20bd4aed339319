// SPDX-License-Identifier: MIT

// Package ratelimit serializes calls against the remote spreadsheet API.
//
// The upstream quota allows one request at a time with a minimum spacing
// between dispatches, so every fetch in the process shares one Queue: even
// logically unrelated range fetches are dispatched strictly one after another.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"schedsync/internal/metrics"
)

// DefaultInterval is the minimum spacing between remote dispatches imposed by
// the upstream API quota.
const DefaultInterval = 1500 * time.Millisecond

// Queue dispatches functions one at a time with a minimum interval between
// dispatches. The zero value is not usable; construct with NewQueue.
type Queue struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewQueue creates a queue with the given minimum spacing between dispatches.
// A non-positive interval disables the spacing (useful in tests) but calls
// are still serialized.
func NewQueue(interval time.Duration) *Queue {
	if interval <= 0 {
		return &Queue{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Queue{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Do runs fn once the queue slot is free and the spacing interval has
// elapsed. Calls are dispatched in lock-acquisition order; no two functions
// ever run concurrently. The wait is abandoned when ctx is cancelled.
func (q *Queue) Do(ctx context.Context, fn func(context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	start := time.Now()
	if err := q.limiter.Wait(ctx); err != nil {
		return err
	}
	metrics.ObserveQueueWait(time.Since(start))

	return fn(ctx)
}
