package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Step is one part of the shutdown sequence, e.g. draining the HTTP server.
type Step struct {
	Name string
	Stop func(ctx context.Context) error
}

// Run executes steps in order, each with its own timeout, and reports every
// failure. A step that overruns does not block the rest.
func Run(timeout time.Duration, steps ...Step) error {
	var errs []error
	for _, s := range steps {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		done := make(chan error, 1)
		go func() { done <- s.Stop(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, &StepError{Name: s.Name, Err: err})
			}
		case <-ctx.Done():
			errs = append(errs, &StepError{Name: s.Name, Err: ctx.Err()})
		}
		cancel()
	}
	return errors.Join(errs...)
}

type StepError struct {
	Name string
	Err  error
}

func (e *StepError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }
