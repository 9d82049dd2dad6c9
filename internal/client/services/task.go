package services

import (
	"context"

	"github.com/google/uuid"
)

// Task is a network call running in the background. The result is available
// once Done is closed.
type Task[T any] struct {
	ID   string
	done chan struct{}
	val  T
	err  error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{ID: uuid.NewString(), done: make(chan struct{})}
}

func (t *Task[T]) finish(v T, err error) {
	t.val, t.err = v, err
	close(t.done)
}

func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finishes or ctx ends. Giving up on the wait does
// not cancel the task.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
