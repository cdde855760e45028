package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/pkg/retry"
)

func TestDoStopsOnFirstSuccess(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	policy := retry.NewPolicy(3, time.Second, clk)

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(clk.Slept()) != 1 {
		t.Fatalf("expected 1 sleep, got %d", len(clk.Slept()))
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	clk := clock.NewFakeClock(time.Now())
	policy := retry.NewPolicy(3, time.Second, clk)

	wantErr := errors.New("still missing")
	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	slept := clk.Slept()
	if len(slept) != 2 {
		t.Fatalf("expected 2 sleeps between 3 attempts, got %d", len(slept))
	}
	for _, d := range slept {
		if d != time.Second {
			t.Fatalf("expected fixed 1s delay, got %s", d)
		}
	}
}

func TestNewPolicyClampsAttempts(t *testing.T) {
	policy := retry.NewPolicy(0, time.Second, clock.NewFakeClock(time.Now()))
	if policy.MaxAttempts != 1 {
		t.Fatalf("expected min 1 attempt, got %d", policy.MaxAttempts)
	}
}
