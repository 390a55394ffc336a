package task

import (
	"context"
	"log/slog"
	"sync"
)

// Runner executes detached background tasks, the ones an HTTP handler
// fires after responding. It tracks every task so shutdown can wait for
// in-flight work, and recovers panics so a bad task cannot kill the server.
type Runner struct {
	wg sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Go runs fn in a new goroutine. Failures are logged, never propagated:
// the caller has already responded to the client by the time fn runs.
func (r *Runner) Go(name string, fn func() error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				slog.Error("background task panicked", "task", name, "panic", v)
			}
		}()

		if err := fn(); err != nil {
			slog.Error("background task failed", "task", name, "error", err)
			return
		}
		slog.Debug("background task finished", "task", name)
	}()
}

// Shutdown blocks until all running tasks finish or ctx expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
