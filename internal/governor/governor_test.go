package governor

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJitterRejectsBadRate(t *testing.T) {
	_, err := NewJitter(0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = NewJitter(-5, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestJitterDelayDistribution(t *testing.T) {
	j, err := NewJitter(10, rand.New(rand.NewSource(42))) // 100ms nominal
	require.NoError(t, err)

	const draws = 5000
	var total time.Duration
	for i := 0; i < draws; i++ {
		d := j.Delay(0)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.Less(t, d, 150*time.Millisecond)
		total += d
	}

	mean := total / draws
	assert.InDelta(t, float64(100*time.Millisecond), float64(mean), float64(5*time.Millisecond))
}

func TestJitterDelayCreditsLatency(t *testing.T) {
	j, err := NewJitter(10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// A slow operation already consumed more than the interval.
	assert.Equal(t, time.Duration(0), j.Delay(200*time.Millisecond))
}

func TestJitterPauseHonorsCancel(t *testing.T) {
	j, err := NewJitter(0.1, rand.New(rand.NewSource(1))) // 10s nominal
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err = j.Pause(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTokenBucketRejectsBadRate(t *testing.T) {
	_, err := NewTokenBucket(0, 1)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestTokenBucketPacesWaits(t *testing.T) {
	tb, err := NewTokenBucket(100, 1)
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, tb.Pause(ctx, 0))
	}
	// 10 tokens at 100/s with burst 1 needs roughly 90ms.
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestTokenBucketHonorsCancel(t *testing.T) {
	tb, err := NewTokenBucket(0.01, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, tb.Pause(ctx, 0)) // burst token

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	assert.Error(t, tb.Pause(ctx, 0))
}
