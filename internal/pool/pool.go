// Package pool keeps weak references to previously generated entities so new
// records can point at real customers and sessions instead of minting fresh
// identities every time. Entries are lookup tuples only; the full records are
// sent to the backend and never retained here.
package pool

import (
	"math/rand"

	"github.com/google/uuid"
)

// CustomerRef is the subset of a customer record needed to denormalize
// follow-on orders and page views.
type CustomerRef struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Segment   string
}

// SessionRef ties a browsing session to an optional customer. A zero
// CustomerID means the session was anonymous.
type SessionRef struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
}

// Stats reports pool occupancy and lookup counters.
type Stats struct {
	Customers    int
	Sessions     int
	Hits         int64
	Misses       int64
	Replacements int64
}

// Pool is a fixed-capacity registry of entity references. Once a slice is
// full, a new entry overwrites a uniformly chosen existing slot, so the pool
// stays a bounded random sample of everything generated so far instead of
// growing for the life of the process.
//
// Pool is not safe for concurrent use; the dispatch loop is single-threaded
// and owns it exclusively.
type Pool struct {
	capacity  int
	customers []CustomerRef
	sessions  []SessionRef
	rng       *rand.Rand

	hits         int64
	misses       int64
	replacements int64
}

// DefaultCapacity bounds each entity kind when no capacity is configured.
const DefaultCapacity = 10000

// New creates a pool holding at most capacity entries per entity kind.
func New(capacity int, rng *rand.Rand) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		capacity:  capacity,
		customers: make([]CustomerRef, 0, min(capacity, 1024)),
		sessions:  make([]SessionRef, 0, min(capacity, 1024)),
		rng:       rng,
	}
}

// AddCustomer registers a customer reference, evicting a random entry when
// the pool is at capacity.
func (p *Pool) AddCustomer(ref CustomerRef) {
	if len(p.customers) < p.capacity {
		p.customers = append(p.customers, ref)
		return
	}
	p.customers[p.rng.Intn(len(p.customers))] = ref
	p.replacements++
}

// AddSession registers a session reference, evicting a random entry when the
// pool is at capacity.
func (p *Pool) AddSession(ref SessionRef) {
	if len(p.sessions) < p.capacity {
		p.sessions = append(p.sessions, ref)
		return
	}
	p.sessions[p.rng.Intn(len(p.sessions))] = ref
	p.replacements++
}

// PickCustomer returns a uniformly chosen customer reference. ok is false
// when nothing has been registered yet; callers fall back to a fresh
// anonymous identity.
func (p *Pool) PickCustomer() (CustomerRef, bool) {
	if len(p.customers) == 0 {
		p.misses++
		return CustomerRef{}, false
	}
	p.hits++
	return p.customers[p.rng.Intn(len(p.customers))], true
}

// PickSession returns a uniformly chosen session reference, or ok=false on an
// empty pool.
func (p *Pool) PickSession() (SessionRef, bool) {
	if len(p.sessions) == 0 {
		p.misses++
		return SessionRef{}, false
	}
	p.hits++
	return p.sessions[p.rng.Intn(len(p.sessions))], true
}

// Stats returns current occupancy and counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Customers:    len(p.customers),
		Sessions:     len(p.sessions),
		Hits:         p.hits,
		Misses:       p.misses,
		Replacements: p.replacements,
	}
}
