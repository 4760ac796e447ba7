package browser

import "context"

// cancellable - runs call until it returns or ctx is done. Playwright and
// WebDriver calls take no context, so on cancellation abort tears down what
// call is blocked on and ctx's error is returned without waiting further.
func cancellable(ctx context.Context, abort func(), call func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if abort != nil {
			abort()
		}
		return ctx.Err()
	}
}
