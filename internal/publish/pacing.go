package publish

import (
	"context"
	"math/rand"
	"time"
)

// DelayFunc picks the pause before the next write.
type DelayFunc func(lo, hi time.Duration) time.Duration

// SleepFunc blocks for d. It returns early only if ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// UniformDelay draws uniformly from [lo, hi], both ends included.
func UniformDelay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo)+1))
}

func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
