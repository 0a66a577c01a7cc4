// Package stats accumulates per-operation outcome counters and renders the
// periodic and final summaries. Counters are keyed twice: by operation kind
// for the rollup, and by kind plus template name for the breakdown.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Bucket is one counter cell. Success plus Errors always equals Count, and
// Latency is the cumulative wall time of all attempts in the cell.
type Bucket struct {
	Count   int64
	Success int64
	Errors  int64
	Latency time.Duration
}

// AvgLatency is Latency / Count, zero for an empty bucket.
func (b Bucket) AvgLatency() time.Duration {
	if b.Count == 0 {
		return 0
	}
	return b.Latency / time.Duration(b.Count)
}

func (b *Bucket) add(ok bool, d time.Duration) {
	b.Count++
	if ok {
		b.Success++
	} else {
		b.Errors++
	}
	b.Latency += d
}

// Snapshot is a detached copy of all counters.
type Snapshot struct {
	Total   Bucket
	ByKind  map[string]Bucket
	ByName  map[string]Bucket
	Started time.Time
	Taken   time.Time
}

// Rate is the overall operations per second since the aggregator started.
func (s Snapshot) Rate() float64 {
	elapsed := s.Taken.Sub(s.Started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Total.Count) / elapsed
}

// Aggregator collects outcomes. Safe for concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	total   Bucket
	byKind  map[string]Bucket
	byName  map[string]Bucket
	started time.Time
	now     func() time.Time
	log     zerolog.Logger
}

func New(log zerolog.Logger) *Aggregator {
	now := time.Now
	return &Aggregator{
		byKind:  make(map[string]Bucket),
		byName:  make(map[string]Bucket),
		started: now(),
		now:     now,
		log:     log,
	}
}

// WithNow overrides the clock, for tests.
func (a *Aggregator) WithNow(now func() time.Time) *Aggregator {
	a.now = now
	a.started = now()
	return a
}

// Record counts one finished operation under its kind and template name.
func (a *Aggregator) Record(kind, name string, ok bool, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total.add(ok, d)

	k := a.byKind[kind]
	k.add(ok, d)
	a.byKind[kind] = k

	key := kind + ":" + name
	n := a.byName[key]
	n.add(ok, d)
	a.byName[key] = n
}

// Count returns the total number of recorded operations.
func (a *Aggregator) Count() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total.Count
}

// Snapshot deep-copies the current counters.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		Total:   a.total,
		ByKind:  make(map[string]Bucket, len(a.byKind)),
		ByName:  make(map[string]Bucket, len(a.byName)),
		Started: a.started,
		Taken:   a.now(),
	}
	for k, v := range a.byKind {
		s.ByKind[k] = v
	}
	for k, v := range a.byName {
		s.ByName[k] = v
	}
	return s
}

// LogSummary emits the one-line progress rollup with per-kind counts.
func (a *Aggregator) LogSummary() {
	s := a.Snapshot()
	ev := a.log.Info().
		Int64("operations", s.Total.Count).
		Int64("errors", s.Total.Errors).
		Float64("ops_per_sec", s.Rate()).
		Dur("avg_latency", s.Total.AvgLatency())
	for _, kind := range sortedKeys(s.ByKind) {
		ev = ev.Int64(kind, s.ByKind[kind].Count)
	}
	ev.Msg("progress")
}

// LogFinal emits the end-of-run report: the rollup line followed by one line
// per template, sorted by key for stable output.
func (a *Aggregator) LogFinal() {
	s := a.Snapshot()
	a.log.Info().
		Int64("operations", s.Total.Count).
		Int64("success", s.Total.Success).
		Int64("errors", s.Total.Errors).
		Float64("ops_per_sec", s.Rate()).
		Dur("elapsed", s.Taken.Sub(s.Started)).
		Msg("run complete")

	for _, key := range sortedKeys(s.ByName) {
		b := s.ByName[key]
		a.log.Info().
			Str("operation", key).
			Int64("count", b.Count).
			Int64("errors", b.Errors).
			Dur("avg_latency", b.AvgLatency()).
			Msg("operation breakdown")
	}
}

func sortedKeys(m map[string]Bucket) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
