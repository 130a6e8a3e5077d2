// Package retry provides a bounded retry policy with linear backoff.
// The same policy type is applied at two levels: around individual provider
// calls (transport failures) and around whole generation attempts (well-formed
// but semantically wrong responses).
package retry

import (
	"context"
	"time"
)

// SleepFunc waits for the given duration, honoring context cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy is a bounded retry policy. Between attempt n and n+1 it waits
// Interval × n, so the backoff grows linearly with the attempt number.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	sleep       SleepFunc
}

// NewPolicy returns a policy with the given attempt bound and base interval.
func NewPolicy(maxAttempts int, interval time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Interval:    interval,
		sleep:       sleepWithContext,
	}
}

// WithSleeper returns a copy of the policy using fn to wait between attempts.
// Tests use this to assert backoff durations without real delays.
func (p Policy) WithSleeper(fn SleepFunc) Policy {
	p.sleep = fn
	return p
}

// Do invokes op up to MaxAttempts times, passing the 1-based attempt number.
// Any error triggers a retry after the linear backoff delay. The last error is
// returned once attempts are exhausted.
func (p Policy) Do(ctx context.Context, op func(attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt < p.MaxAttempts {
			if err := p.wait(ctx, attempt); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func (p Policy) wait(ctx context.Context, attempt int) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepWithContext
	}
	return sleep(ctx, p.Interval*time.Duration(attempt))
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
