// Package sample provides weighted categorical sampling over an injected
// random source. Every skewed field distribution in the generators (order
// status, device type, operation kind) goes through a Weighted table built
// once at startup, so invalid weight configurations fail before any traffic
// is dispatched.
package sample

import (
	"errors"
	"math/rand"
	"sort"
)

var (
	// ErrNoItems is returned when a table is built with no items.
	ErrNoItems = errors.New("sample: no items")
	// ErrWeightMismatch is returned when items and weights differ in length.
	ErrWeightMismatch = errors.New("sample: items and weights length mismatch")
	// ErrInvalidWeight is returned for negative or all-zero weights.
	ErrInvalidWeight = errors.New("sample: invalid weight")
)

// Weighted is an immutable cumulative-weight table. Pick draws one uniform
// number and binary-searches the table, so selection is O(log n) regardless
// of how skewed the distribution is.
type Weighted[T any] struct {
	items []T
	cum   []float64
	total float64
}

// NewWeighted builds a table from parallel item and weight slices.
func NewWeighted[T any](items []T, weights []float64) (*Weighted[T], error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if len(items) != len(weights) {
		return nil, ErrWeightMismatch
	}

	w := &Weighted[T]{
		items: make([]T, len(items)),
		cum:   make([]float64, len(items)),
	}
	copy(w.items, items)

	for i, weight := range weights {
		if weight < 0 {
			return nil, ErrInvalidWeight
		}
		w.total += weight
		w.cum[i] = w.total
	}
	if w.total == 0 {
		return nil, ErrInvalidWeight
	}

	return w, nil
}

// Pick returns one item drawn according to the table's weights.
func (w *Weighted[T]) Pick(rng *rand.Rand) T {
	target := rng.Float64() * w.total
	idx := sort.SearchFloat64s(w.cum, target)
	if idx >= len(w.items) {
		idx = len(w.items) - 1
	}
	// SearchFloat64s returns the first index with cum >= target; a draw that
	// lands exactly on a boundary belongs to the next bucket.
	for idx < len(w.items)-1 && w.cum[idx] == target {
		idx++
	}
	return w.items[idx]
}

// Uniform returns one item drawn uniformly from items. It panics on an empty
// slice, matching the contract of rand.Intn.
func Uniform[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// UniformN returns n distinct items drawn without replacement.
// n is clamped to len(items).
func UniformN[T any](rng *rand.Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	picked := make([]T, len(items))
	copy(picked, items)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

// Chance returns true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Between returns a uniform float64 in [lo, hi).
func Between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// IntBetween returns a uniform int in [lo, hi].
func IntBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
