// Package retry provides a configurable retry mechanism for operations that
// may fail transiently. It wraps the retry-go package from Avast behind a
// small interface with functional options for attempts, delays, and backoff
// strategy.
//
// Basic usage:
//
//	r := retry.New()
//	err := r.Execute(ctx, func() error {
//	    return someOperation()
//	})
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retry logic on failure.
type Retry interface {
	// Execute runs the given operation with the configured retry behavior.
	// The operation should be idempotent. If the context is canceled or its
	// deadline passes, retrying stops and the context error is returned.
	// Execute returns nil once the operation succeeds, or an error after all
	// attempts are exhausted.
	Execute(ctx context.Context, operation func() error) error
}

// backoff identifies the delay-growth strategy between attempts.
type backoff int

const (
	// backoffExponential doubles the delay after each failed attempt.
	backoffExponential backoff = iota

	// backoffLinear grows the delay by the base delay after each failed
	// attempt (delay, 2*delay, 3*delay, ...).
	backoffLinear
)

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // upper bound on the delay between attempts
	backoff     backoff       // delay-growth strategy
	lastErrOnly bool          // whether to return only the final error
}

// Option configures the retry mechanism. Options are applied in order.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New creates a Retry implementation configured with the provided options.
//
// Defaults:
//   - attempts:    3 (1 initial attempt + 2 retries)
//   - delay:       1 second
//   - maxDelay:    5 seconds
//   - backoff:     exponential
//   - lastErrOnly: true
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		backoff:     backoffExponential,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// delayType maps the configured backoff strategy to a retry-go DelayTypeFunc.
func (r *retrier) delayType() retry.DelayTypeFunc {
	if r.cfg.backoff == backoffLinear {
		return func(n uint, err error, config *retry.Config) time.Duration {
			return time.Duration(n+1) * r.cfg.delay
		}
	}
	return retry.BackOffDelay
}

// Execute runs the operation with the configured attempt count, delay
// strategy, and context-aware cancellation.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(r.delayType()),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts, including the initial
// one. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the delay between attempts regardless of backoff growth.
// Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLinearBackoff switches the delay strategy from exponential doubling to
// linear growth in multiples of the base delay.
func WithLinearBackoff() Option {
	return func(c *config) {
		c.backoff = backoffLinear
	}
}

// WithLastErrorOnly controls whether Execute returns only the error from the
// final attempt (true, the default) or a combination of every attempt's error.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
