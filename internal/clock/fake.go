package clock

import (
	"context"
	"time"
)

type FakeClock struct {
	now   time.Time
	slept []time.Duration
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Sleep(_ context.Context, d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Slept reports the durations passed to Sleep, in order.
func (c *FakeClock) Slept() []time.Duration {
	return c.slept
}
