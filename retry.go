package hypersave

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls Retry. Zero fields take the defaults listed below.
type RetryPolicy struct {
	MaxAttempts     int           // total attempts including the first; default 3
	InitialInterval time.Duration // default 500ms
	MaxInterval     time.Duration // default 10s
	Multiplier      float64       // default 2
	// Jitter is the randomization factor applied to each interval; default 0.5.
	// Negative disables jitter.
	Jitter float64
}

// DefaultRetryPolicy is used when Retry is given a zero policy.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:     3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     10 * time.Second,
	Multiplier:      2,
	Jitter:          0.5,
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy
	if p.MaxAttempts > 0 {
		d.MaxAttempts = p.MaxAttempts
	}
	if p.InitialInterval > 0 {
		d.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		d.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		d.Multiplier = p.Multiplier
	}
	switch {
	case p.Jitter < 0:
		d.Jitter = 0
	case p.Jitter > 0:
		d.Jitter = p.Jitter
	}
	return d
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.Multiplier = p.Multiplier
	exp.RandomizationFactor = p.Jitter
	exp.MaxElapsedTime = 0
	exp.Reset()
	return exp
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// policy's attempts are used up. Client methods never retry on their own;
// wrap them with Retry when a call is safe to repeat.
//
// Rate-limit errors carrying RetryAfterSeconds wait that long instead of the
// computed backoff. If ctx ends while waiting, the last error from fn is
// returned.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	p = p.withDefaults()
	exp := p.newBackOff()

	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !IsRetryable(err) || attempt >= p.MaxAttempts {
			return v, err
		}

		wait := exp.NextBackOff()
		if e, ok := AsError(err); ok && e.RetryAfterSeconds > 0 {
			wait = time.Duration(e.RetryAfterSeconds) * time.Second
		}
		if wait == backoff.Stop {
			return v, err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return v, err
		case <-timer.C:
		}
	}
}
