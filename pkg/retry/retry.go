package retry

import (
	"context"
	"time"

	"github.com/smallbiznis/storefront/internal/clock"
)

// Policy is a bounded fixed-delay retry policy. Attempts and delay are
// explicit so callers can verify and tune them independently.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Clock       clock.Clock
}

func NewPolicy(maxAttempts int, delay time.Duration, clk clock.Clock) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return Policy{MaxAttempts: maxAttempts, Delay: delay, Clock: clk}
}

// Do runs fn up to MaxAttempts times, sleeping Delay between attempts.
// It stops on the first nil error and returns the last error otherwise.
// The sleep is per caller; concurrent invocations wait independently.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			p.Clock.Sleep(ctx, p.Delay)
		}
		err = fn(ctx)
		if err == nil {
			return nil
		}
	}
	return err
}
