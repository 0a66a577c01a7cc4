// Package governor paces the dispatch loop. Two strategies are available:
// jittered fixed-rate pacing, which spaces operations around a target
// interval while crediting time already spent executing, and a token bucket
// built on golang.org/x/time/rate for strict sustained-rate enforcement.
package governor

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-data/ecomload/internal/sample"
)

// ErrInvalidRate rejects non-positive target rates at construction.
var ErrInvalidRate = errors.New("governor: rate must be positive")

// Pacer blocks between operations. latency is the time the previous
// operation took, so pacing can credit work already done. Pause returns
// early with the context error when the context is cancelled mid-wait.
type Pacer interface {
	Pause(ctx context.Context, latency time.Duration) error
}

// Jitter paces to an average of rate operations per second, with each gap
// drawn uniformly from 50% to 150% of the nominal interval.
type Jitter struct {
	interval time.Duration
	rng      *rand.Rand
}

// NewJitter builds a jittered pacer targeting rate operations per second.
func NewJitter(opsPerSecond float64, rng *rand.Rand) (*Jitter, error) {
	if opsPerSecond <= 0 {
		return nil, ErrInvalidRate
	}
	return &Jitter{
		interval: time.Duration(float64(time.Second) / opsPerSecond),
		rng:      rng,
	}, nil
}

// Delay computes the next sleep: a jittered interval minus the latency
// already spent, floored at zero. Split out from Pause so the distribution
// is testable without sleeping.
func (j *Jitter) Delay(latency time.Duration) time.Duration {
	jittered := time.Duration(float64(j.interval) * sample.Between(j.rng, 0.5, 1.5))
	if d := jittered - latency; d > 0 {
		return d
	}
	return 0
}

func (j *Jitter) Pause(ctx context.Context, latency time.Duration) error {
	d := j.Delay(latency)
	if d == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TokenBucket enforces a hard sustained rate. Latency is ignored; the
// limiter already accounts for elapsed time.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket builds a limiter-backed pacer. burst below 1 is raised to 1
// so a single waiter can always proceed.
func NewTokenBucket(opsPerSecond float64, burst int) (*TokenBucket, error) {
	if opsPerSecond <= 0 {
		return nil, ErrInvalidRate
	}
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(opsPerSecond), burst)}, nil
}

func (t *TokenBucket) Pause(ctx context.Context, _ time.Duration) error {
	return t.limiter.Wait(ctx)
}
