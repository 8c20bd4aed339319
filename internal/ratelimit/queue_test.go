// SPDX-License-Identifier: MIT

package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Serializes(t *testing.T) {
	q := NewQueue(0)

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := q.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "no two queued functions may run concurrently")
}

func TestQueue_MinimumSpacing(t *testing.T) {
	const interval = 40 * time.Millisecond
	q := NewQueue(interval)

	var stamps []time.Time
	for i := 0; i < 4; i++ {
		err := q.Do(context.Background(), func(context.Context) error {
			stamps = append(stamps, time.Now())
			return nil
		})
		require.NoError(t, err)
	}

	require.Len(t, stamps, 4)
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.GreaterOrEqual(t, gap, interval-2*time.Millisecond,
			"dispatch %d followed %d after only %v", i, i-1, gap)
	}
}

func TestQueue_FirstDispatchImmediate(t *testing.T) {
	q := NewQueue(time.Minute)

	start := time.Now()
	err := q.Do(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "first dispatch must not wait out the interval")
}

func TestQueue_ContextCancelled(t *testing.T) {
	q := NewQueue(time.Minute)

	// Burn the single burst slot so the next call has to wait.
	require.NoError(t, q.Do(context.Background(), func(context.Context) error { return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := q.Do(ctx, func(context.Context) error {
		t.Fatal("function must not run after cancellation")
		return nil
	})
	assert.Error(t, err)
}

func TestQueue_PropagatesError(t *testing.T) {
	q := NewQueue(0)
	sentinel := errors.New("boom")

	err := q.Do(context.Background(), func(context.Context) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}
