package syncer

import (
	"context"
	"time"
)

// Pacer blocks between processed rows to stay under the extraction
// service's rate limit.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context, d time.Duration) error

// Pause calls f.
func (f PacerFunc) Pause(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// SleepPacer waits for the full delay, returning early only if ctx is done.
type SleepPacer struct{}

// Pause sleeps for d.
func (SleepPacer) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
