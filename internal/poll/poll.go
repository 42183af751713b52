// Package poll waits on long-running server jobs by polling with adaptive
// backoff.
package poll

import (
	"context"
	"math/rand/v2"
	"time"
)

// Schedule defaults applied to zero Options fields.
const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxInterval = 30 * time.Second
	DefaultMultiplier  = 1.5
	DefaultJitter      = 0.3
)

// Options controls the polling schedule. Zero fields take the defaults.
type Options struct {
	// Interval is the wait after the first unfinished check.
	Interval time.Duration
	// MaxInterval caps the backoff.
	MaxInterval time.Duration
	// Multiplier grows the interval after every unfinished check.
	Multiplier float64
	// Jitter adds up to this fraction of the interval to each wait. A negative
	// value disables jitter.
	Jitter float64
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = DefaultMaxInterval
	}
	if o.MaxInterval < o.Interval {
		o.MaxInterval = o.Interval
	}
	if o.Multiplier < 1 {
		o.Multiplier = DefaultMultiplier
	}
	switch {
	case o.Jitter == 0:
		o.Jitter = DefaultJitter
	case o.Jitter < 0:
		o.Jitter = 0
	}
	return o
}

// Until calls check immediately and then on a growing interval until done
// reports true for its result, check fails, or ctx is done. The last result is
// returned alongside a context error.
func Until[T any](ctx context.Context, check func(context.Context) (T, error), done func(T) bool, opts Options) (T, error) {
	opts = opts.withDefaults()
	interval := opts.Interval

	for {
		v, err := check(ctx)
		if err != nil {
			return v, err
		}
		if done(v) {
			return v, nil
		}

		wait := interval
		if opts.Jitter > 0 {
			wait += time.Duration(rand.Float64() * opts.Jitter * float64(interval))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return v, ctx.Err()
		case <-timer.C:
		}

		interval = time.Duration(float64(interval) * opts.Multiplier)
		if interval > opts.MaxInterval {
			interval = opts.MaxInterval
		}
	}
}
