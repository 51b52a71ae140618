// Package asyncop makes the portal's fire-and-forget write policy explicit.
// A write runs as a Task; the caller either waits on the result (strict
// flows) or detaches it (optimistic flows), in which case a failure is
// broadcast on the error channel instead of being returned.
package asyncop

import (
	"context"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// WriteFunc performs the underlying write.
type WriteFunc func(ctx context.Context) error

// Task is a single asynchronous write with an inspectable outcome.
type Task struct {
	path      string
	operation string
	payload   interface{}
	done      chan error
}

// Run starts fn in its own goroutine and returns the task handle.
// path and operation identify the write for diagnostics; payload is the
// attempted document, attached to the failure event when the write fails.
func Run(ctx context.Context, path, operation string, payload interface{}, fn WriteFunc) *Task {
	t := &Task{
		path:      path,
		operation: operation,
		payload:   payload,
		done:      make(chan error, 1),
	}

	go func() {
		t.done <- fn(ctx)
	}()

	return t
}

// Wait blocks until the write completes and returns its error, or the
// context error if ctx is cancelled first.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Detach stops tracking the result. If the write eventually fails, the
// failure is published on the dispatcher as a write.failed event carrying
// the path, operation and attempted payload. The caller's view of the
// operation stays optimistic either way.
func (t *Task) Detach(d dispatcher.Dispatcher) {
	go func() {
		err := <-t.done
		if err == nil || d == nil {
			return
		}
		d.DispatchAsync(context.Background(),
			event.NewWriteFailure(t.path, t.operation, t.payload, err))
	}()
}
