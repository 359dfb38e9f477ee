package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitBackoff_Completes(t *testing.T) {
	if err := waitBackoff(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("waitBackoff() unexpected error: %v", err)
	}
}

func TestWaitBackoff_CanceledContextReturnsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := waitBackoff(ctx, 5*time.Second)
	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("waitBackoff() error = %v, want context.Canceled", err)
	}
	if elapsed > 100*time.Millisecond {
		t.Fatalf("waitBackoff() took %v, should not wait out the backoff after cancellation", elapsed)
	}
}

func TestWaitBackoff_DeadlineReturnsEarly(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := waitBackoff(ctx, 5*time.Second)
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("waitBackoff() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed > time.Second {
		t.Fatalf("waitBackoff() took %v, should stop at the deadline", elapsed)
	}
}
