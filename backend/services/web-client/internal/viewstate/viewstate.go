// Package viewstate models the lifecycle of a fetch-driven view.
package viewstate

import (
	"context"
	"errors"
	"time"

	"busreserva/backend/services/web-client/internal/clients"
)

// Phase is the state of a fetch.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
	NotFound
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Fetch holds the outcome of one fetch for one view render.
type Fetch[T any] struct {
	Phase   Phase
	Data    T
	Message string
	Err     error
}

// Runner executes fetches bound to the lifetime of the view that issued them.
type Runner struct {
	timeout time.Duration
}

// NewRunner returns a runner applying timeout to every fetch. Zero disables the extra deadline.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// Run moves f through loading into a terminal phase. The fetch is cancelled as soon as ctx
// ends, which is how a view teardown aborts its in-flight request. fallback is the message
// used when the error carries no text of its own.
func Run[T any](ctx context.Context, r *Runner, fallback string, fn func(ctx context.Context) (T, error)) Fetch[T] {
	f := Fetch[T]{Phase: Loading}

	fetchCtx := ctx
	if r != nil && r.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	data, err := fn(fetchCtx)
	switch {
	case err == nil:
		f.Phase = Success
		f.Data = data
	case clients.IsNotFound(err):
		f.Phase = NotFound
		f.Err = err
	default:
		f.Phase = Failed
		f.Err = err
		f.Message = clients.Describe(err, fallback)
	}
	return f
}

// Abandoned reports whether the view went away while the fetch was running, in which case
// nothing should be rendered for it.
func (f Fetch[T]) Abandoned(ctx context.Context) bool {
	return f.Phase == Failed && ctx.Err() != nil && errors.Is(f.Err, context.Canceled)
}
