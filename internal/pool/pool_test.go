package pool

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickEmptyPool(t *testing.T) {
	p := New(10, rand.New(rand.NewSource(1)))

	_, ok := p.PickCustomer()
	assert.False(t, ok)
	_, ok = p.PickSession()
	assert.False(t, ok)

	s := p.Stats()
	assert.Equal(t, int64(2), s.Misses)
	assert.Zero(t, s.Hits)
}

func TestAddAndPickCustomer(t *testing.T) {
	p := New(10, rand.New(rand.NewSource(1)))
	ref := CustomerRef{ID: uuid.New(), Email: "a@example.com", Segment: "vip"}
	p.AddCustomer(ref)

	got, ok := p.PickCustomer()
	require.True(t, ok)
	assert.Equal(t, ref, got)
	assert.Equal(t, int64(1), p.Stats().Hits)
}

func TestCapacityEviction(t *testing.T) {
	const capacity = 10
	p := New(capacity, rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		p.AddCustomer(CustomerRef{ID: uuid.New()})
		p.AddSession(SessionRef{ID: uuid.New()})
	}

	s := p.Stats()
	assert.Equal(t, capacity, s.Customers)
	assert.Equal(t, capacity, s.Sessions)
	assert.Equal(t, int64(80), s.Replacements)
}

func TestAnonymousSession(t *testing.T) {
	p := New(10, rand.New(rand.NewSource(1)))
	p.AddSession(SessionRef{ID: uuid.New()})

	got, ok := p.PickSession()
	require.True(t, ok)
	assert.Equal(t, uuid.Nil, got.CustomerID)
}

func TestDefaultCapacity(t *testing.T) {
	p := New(0, rand.New(rand.NewSource(1)))
	assert.Equal(t, DefaultCapacity, p.capacity)
}
