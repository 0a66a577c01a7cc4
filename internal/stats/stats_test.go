package stats

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRecordKeepsBucketsConsistent(t *testing.T) {
	a := New(zerolog.Nop())

	a.Record("SELECT", "orders_by_status", true, 10*time.Millisecond)
	a.Record("SELECT", "orders_by_status", false, 20*time.Millisecond)
	a.Record("SELECT", "top_customers", true, 5*time.Millisecond)
	a.Record("INSERT", "insert_orders", true, 15*time.Millisecond)

	s := a.Snapshot()
	assert.Equal(t, int64(4), s.Total.Count)
	assert.Equal(t, int64(3), s.Total.Success)
	assert.Equal(t, int64(1), s.Total.Errors)
	assert.Equal(t, 50*time.Millisecond, s.Total.Latency)

	assert.Equal(t, int64(3), s.ByKind["SELECT"].Count)
	assert.Equal(t, int64(1), s.ByKind["INSERT"].Count)
	assert.Equal(t, int64(2), s.ByName["SELECT:orders_by_status"].Count)
	assert.Equal(t, int64(1), s.ByName["SELECT:orders_by_status"].Errors)

	// Success + errors must always equal count in every bucket.
	for key, b := range s.ByName {
		assert.Equal(t, b.Count, b.Success+b.Errors, "bucket %s", key)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	a := New(zerolog.Nop())
	a.Record("SELECT", "q", true, time.Millisecond)

	s := a.Snapshot()
	a.Record("SELECT", "q", true, time.Millisecond)

	assert.Equal(t, int64(1), s.Total.Count)
	assert.Equal(t, int64(1), s.ByName["SELECT:q"].Count)
	assert.Equal(t, int64(2), a.Count())
}

func TestRate(t *testing.T) {
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := New(zerolog.Nop()).WithNow(func() time.Time { return clock })

	for i := 0; i < 100; i++ {
		a.Record("SELECT", "q", true, time.Millisecond)
	}
	clock = clock.Add(10 * time.Second)

	assert.InDelta(t, 10.0, a.Snapshot().Rate(), 0.001)
}

func TestAvgLatency(t *testing.T) {
	var b Bucket
	assert.Equal(t, time.Duration(0), b.AvgLatency())

	b.add(true, 10*time.Millisecond)
	b.add(false, 30*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, b.AvgLatency())
}
