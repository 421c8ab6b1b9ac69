// Package retry centralizes the backoff policy used for transient failures.
// One policy everywhere: exponential with full jitter, bounded attempts
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes one bounded exponential backoff schedule
type Policy struct {
	Base        time.Duration // first delay, e.g. 1s
	Cap         time.Duration // delay ceiling, e.g. 60s
	MaxAttempts int           // total tries including the first; 0 = try once
}

// Default is the pipeline-wide policy for store and collaborator calls
func Default() Policy {
	return Policy{Base: time.Second, Cap: 60 * time.Second, MaxAttempts: 5}
}

// Permanent marks err as not worth retrying
func Permanent(err error) error { return backoff.Permanent(err) }

// Do runs op under the policy until it succeeds, returns a permanent error,
// exhausts attempts, or ctx is done. The randomization factor of 1 spreads
// each delay across [0, 2*interval], the full-jitter shape that keeps
// concurrent pollers from stampeding a recovering backend
func (p Policy) Do(ctx context.Context, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.Base
	eb.MaxInterval = p.Cap
	eb.RandomizationFactor = 1
	eb.Multiplier = 2
	eb.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	var b backoff.BackOff = backoff.WithContext(eb, ctx)
	if p.MaxAttempts > 0 {
		b = backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1))
	} else {
		b = backoff.WithMaxRetries(b, 0)
	}
	return backoff.Retry(op, b)
}
