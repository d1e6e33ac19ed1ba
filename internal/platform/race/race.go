// Package race settles an operation against a deadline.
package race

import (
	"context"
	"errors"
	"time"
)

var ErrTimeout = errors.New("operation timed out")

// WithTimeout runs fn and a timer concurrently; whichever settles first
// decides the result, which is reported exactly once. fn receives a context
// that is cancelled at the deadline, but an operation that ignores it may
// still complete afterwards. Its result is then dropped.
func WithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
