package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(maxAttempts int) Policy {
	return NewPolicy(maxAttempts, time.Millisecond, 10*time.Millisecond, 2.0)
}

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := fastPolicy(3).Do(context.Background(), operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := fastPolicy(5).Do(context.Background(), operation)

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_AttemptsExhausted(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	err := fastPolicy(3).Do(context.Background(), operation)

	if err == nil {
		t.Error("Expected error after exhausting attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_FatalNotRetried(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("bad input"))
	}

	err := fastPolicy(5).Do(context.Background(), operation)

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for fatal error, got: %d", attempts)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	operation := func() error {
		attempts++
		cancel()
		return errors.New("keep retrying")
	}

	policy := NewPolicy(5, time.Second, time.Second, 2.0)
	err := policy.Do(ctx, operation)

	if err == nil {
		t.Error("Expected cancellation error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got: %d", attempts)
	}
}

func TestDo_DelayGrowthCapped(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	policy := NewPolicy(4, 10*time.Millisecond, 25*time.Millisecond, 2.0)
	policy.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_ = policy.Do(context.Background(), func() error {
		return errors.New("always fails")
	})

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 25 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("Expected %d sleeps, got %d", len(want), len(delays))
	}
	for i, d := range delays {
		if d != want[i] {
			t.Errorf("Sleep %d: expected %v, got %v", i, want[i], d)
		}
	}
}

func TestFatal_NilError(t *testing.T) {
	t.Parallel()
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should return nil")
	}
	if IsFatal(nil) {
		t.Error("IsFatal(nil) should be false")
	}
}

func TestFatal_Unwrap(t *testing.T) {
	t.Parallel()
	base := errors.New("underlying")
	err := Fatal(base)

	if !errors.Is(err, base) {
		t.Error("Fatal error should unwrap to the underlying error")
	}
	if !IsFatal(err) {
		t.Error("Expected IsFatal to report true")
	}
}
