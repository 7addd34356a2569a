// Package retry provides a small reusable policy for retrying operations
// with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy holds retry configuration. The zero value is not useful; use
// NewPolicy or one of the preset constructors.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy builds a Policy with the given attempt budget and backoff shape.
func NewPolicy(maxAttempts int, initialDelay, maxDelay time.Duration, multiplier float64) Policy {
	return Policy{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		Multiplier:   multiplier,
		sleep:        sleepCtx,
	}
}

// Lookup is the read-path policy: 3 attempts, 500ms base, doubling.
func Lookup() Policy {
	return NewPolicy(3, 500*time.Millisecond, 5*time.Second, 2.0)
}

// Do runs operation until it succeeds, returns a fatal error, or the
// attempt budget is exhausted. Context cancellation is respected while
// waiting between attempts.
//
// Errors wrapped with Fatal() are not retried.
func (p Policy) Do(ctx context.Context, operation func() error) error {
	if p.sleep == nil {
		p.sleep = sleepCtx
	}

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < p.MaxAttempts {
			if err := p.sleep(ctx, delay); err != nil {
				return fmt.Errorf("cancelled after %d attempts: %w", attempt, err)
			}
			delay = time.Duration(float64(delay) * p.Multiplier)
			if delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", p.MaxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
