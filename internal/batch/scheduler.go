// Package batch runs asynchronous tasks in fixed-size groups with an
// inter-group delay, for clients of rate-limited third-party services.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task produces one value. A nil-ok result ("settled but failed") is expressed
// by returning a non-nil error.
type Task[T any] func(ctx context.Context) (T, error)

// Result is one positional slot of a Run. OK is false when the task settled
// with an error; its Value is then the zero value.
type Result[T any] struct {
	Value T
	OK    bool
}

// Options tunes a Run.
type Options struct {
	// BatchSize caps how many tasks run concurrently in one group.
	BatchSize int
	// Delay is slept between consecutive groups (not after the last).
	Delay time.Duration
	// OnProgress, when set, is invoked after each group with the total number
	// of tasks settled so far.
	OnProgress func(completed int)
}

// Run partitions tasks into consecutive groups of at most BatchSize, launches
// each group concurrently and awaits all completions before moving on. A
// task's individual failure is captured in its slot and never aborts its
// siblings. Slots are assigned positionally, so output order matches input
// order regardless of completion order.
//
// Cancellation is checked before each group: once ctx is done, Run stops and
// returns only the slots attempted so far. Callers must treat missing slots
// as "not attempted".
func Run[T any](ctx context.Context, tasks []Task[T], opts Options) []Result[T] {
	size := opts.BatchSize
	if size < 1 {
		size = 1
	}

	results := make([]Result[T], 0, len(tasks))

	for start := 0; start < len(tasks); start += size {
		if ctx.Err() != nil {
			return results
		}

		end := start + size
		if end > len(tasks) {
			end = len(tasks)
		}

		group := make([]Result[T], end-start)

		var g errgroup.Group
		for i, task := range tasks[start:end] {
			i, task := i, task
			g.Go(func() error {
				v, err := task(ctx)
				if err == nil {
					group[i] = Result[T]{Value: v, OK: true}
				}
				return nil
			})
		}
		// Tasks never propagate errors through the group; Wait only joins.
		_ = g.Wait()

		results = append(results, group...)

		if opts.OnProgress != nil {
			opts.OnProgress(len(results))
		}

		if end < len(tasks) && opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}

	return results
}
