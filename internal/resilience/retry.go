// Package resilience retries provider calls that fail for transient reasons.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Policy controls how often and how patiently a call is retried.
type Policy struct {
	// Attempts is the total number of calls, the first included.
	Attempts int
	// Backoff is the pause before the first retry; it doubles after each.
	Backoff time.Duration
	// MaxBackoff caps every pause, a server's Retry-After included.
	MaxBackoff time.Duration
	// Jitter spreads each pause by up to this fraction either way.
	Jitter float64
	// Retryable overrides IsTransient when set.
	Retryable func(err error) bool
	// OnRetry runs before each pause.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy is three attempts starting at half a second.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   3,
		Backoff:    500 * time.Millisecond,
		MaxBackoff: 30 * time.Second,
		Jitter:     0.25,
	}
}

// ForProvider returns DefaultPolicy with retries extra attempts that log
// under service/operation. retries <= 0 means a single attempt.
func ForProvider(service, operation string, retries int) Policy {
	p := DefaultPolicy()
	p.Attempts = 1
	if retries > 0 {
		p.Attempts = retries + 1
	}
	p.OnRetry = RetryLogger(service, operation)
	return p
}

// Do runs fn until it succeeds, fails permanently, runs out of attempts or
// ctx ends.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is Do for calls that return a value. The zero value is returned
// with the last error.
func DoVal[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var zero T
	var err error
	for attempt := 1; ; attempt++ {
		var val T
		val, err = fn(ctx)
		if err == nil {
			return val, nil
		}
		if attempt >= p.Attempts || ctx.Err() != nil || !retryable(err) {
			return zero, err
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		timer := time.NewTimer(p.pause(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, err
		case <-timer.C:
		}
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.Attempts <= 0 {
		p.Attempts = d.Attempts
	}
	if p.Backoff <= 0 {
		p.Backoff = d.Backoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = d.MaxBackoff
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	return p
}

// pause is the wait after the given failed attempt (1-based). A server's
// Retry-After wins over the computed delay when it is longer.
func (p Policy) pause(attempt int, err error) time.Duration {
	delay := float64(p.Backoff) * math.Pow(2, float64(attempt-1))
	if p.Jitter > 0 {
		delay += (rand.Float64()*2 - 1) * delay * p.Jitter
	}

	var se *StatusError
	if errors.As(err, &se) && float64(se.RetryAfter) > delay {
		delay = float64(se.RetryAfter)
	}

	delay = math.Min(math.Max(delay, 0), float64(p.MaxBackoff))
	return time.Duration(delay)
}

// RetryLogger returns an OnRetry callback that logs each retry.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("resilience: retrying",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
