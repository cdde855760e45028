package clock

import (
	"context"
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so retry and backoff logic is testable.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

var Module = fx.Provide(func() Clock { return &SystemClock{} })

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
