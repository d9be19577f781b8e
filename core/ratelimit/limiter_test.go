package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestLimiter_SixthCheckDenied(t *testing.T) {
	clock := newClock()
	rl := New(5, 10*time.Minute, WithClock(clock.Now))

	for i := 1; i <= 5; i++ {
		d := rl.Decide("203.0.113.7")
		assert.True(t, d.Allowed, "check %d", i)
		assert.Equal(t, 5-i, d.Remaining, "check %d", i)
		assert.Equal(t, 5, d.Limit)
	}

	d := rl.Decide("203.0.113.7")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, clock.Now().Add(10*time.Minute), d.ResetAt)
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	clock := newClock()
	rl := New(5, 10*time.Minute, WithClock(clock.Now))

	for i := 0; i < 6; i++ {
		rl.Decide("k")
	}
	clock.Advance(10 * time.Minute)

	d := rl.Decide("k")
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)
	assert.Equal(t, clock.Now().Add(10*time.Minute), d.ResetAt)
}

func TestLimiter_DeniedRequestsDoNotConsumeBudget(t *testing.T) {
	clock := newClock()
	rl := New(2, time.Minute, WithClock(clock.Now))

	assert.True(t, rl.Allow("k"))
	assert.True(t, rl.Allow("k"))
	for i := 0; i < 10; i++ {
		assert.False(t, rl.Allow("k"))
	}

	clock.Advance(time.Minute)
	assert.True(t, rl.Allow("k"))
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	rl := New(1, time.Minute)

	assert.True(t, rl.Allow("127.0.0.1"))
	assert.False(t, rl.Allow("127.0.0.1"))
	assert.True(t, rl.Allow("192.168.1.1"))
}

func TestLimiter_RetryAfter(t *testing.T) {
	clock := newClock()
	rl := New(1, 10*time.Minute, WithClock(clock.Now))
	rl.Decide("k")

	clock.Advance(4 * time.Minute)
	d := rl.Decide("k")

	require.False(t, d.Allowed)
	assert.Equal(t, 6*time.Minute, d.RetryAfter(clock.Now()))
	assert.Equal(t, 360, d.RetryAfterSeconds(clock.Now()))
	assert.Equal(t, time.Duration(0), d.RetryAfter(clock.Now().Add(time.Hour)))
}

func TestLimiter_Check(t *testing.T) {
	rl := New(3, time.Minute)

	d, err := rl.Check(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestLimiter_Defaults(t *testing.T) {
	rl := New(0, 0)

	assert.Equal(t, DefaultLimit, rl.Limit())
	assert.Equal(t, DefaultWindow, rl.Window())
}

func TestLimiter_ConcurrentChecksNeverOverAdmit(t *testing.T) {
	rl := New(5, time.Minute)

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), admitted.Load())
}

func TestLimiter_ConcurrentManyKeys(t *testing.T) {
	rl := New(3, time.Minute)

	var wg sync.WaitGroup
	counts := make([]atomic.Int32, 10)
	for i := 0; i < 10; i++ {
		for j := 0; j < 20; j++ {
			wg.Add(1)
			go func(k int) {
				defer wg.Done()
				if rl.Allow(fmt.Sprintf("caller-%d", k)) {
					counts[k].Add(1)
				}
			}(i)
		}
	}
	wg.Wait()

	for i := range counts {
		assert.Equal(t, int32(3), counts[i].Load(), "caller-%d", i)
	}
}

func TestRejection(t *testing.T) {
	clock := newClock()
	rl := New(1, time.Minute, WithClock(clock.Now))
	rl.Decide("k")
	clock.Advance(15 * time.Second)

	d := rl.Decide("k")
	require.False(t, d.Allowed)

	err := Rejection("k", d, clock.Now())
	assert.Equal(t, "k", err.Key)
	assert.Equal(t, 1, err.Limit)
	assert.Equal(t, 0, err.Remaining)
	assert.Equal(t, 45*time.Second, err.RetryAfter)
	assert.Equal(t, d.ResetAt, err.ResetAt)
}
