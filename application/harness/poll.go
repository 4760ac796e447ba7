package harness

import (
	"context"
	"fmt"
	"time"

	"ui_harness/domain/entities"
)

// Check inspects the page once. done reports whether the condition holds and
// observed describes what was seen, for diagnostics. A returned error is
// treated as transient: it is recorded as the observed state and polling continues.
type Check func(ctx context.Context) (done bool, observed string, err error)

// Poll runs check every interval until it succeeds, timeout elapses or ctx is
// cancelled. The first check happens immediately. On expiry it returns a
// *entities.TimeoutError carrying the last observed state; on cancellation it
// returns an error wrapping entities.ErrCancelled and the context error.
func Poll(ctx context.Context, condition string, timeout, interval time.Duration, check Check) error {
	if interval <= 0 {
		interval = entities.DefaultPollInterval
	}
	deadline := time.Now().Add(timeout)

	var lastObserved string
	for {
		if err := ctx.Err(); err != nil {
			return cancelled(err)
		}

		checkCtx, cancel := context.WithDeadline(ctx, deadline)
		done, observed, err := check(checkCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return cancelled(ctx.Err())
			}
			observed = err.Error()
		}
		if done {
			return nil
		}
		lastObserved = observed

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return &entities.TimeoutError{
				Condition:    condition,
				Timeout:      timeout,
				LastObserved: lastObserved,
			}
		}

		wait := interval
		if remaining < wait {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return cancelled(ctx.Err())
		case <-timer.C:
		}
	}
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", entities.ErrCancelled, err)
}
