package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunGroupsAndOrdering(t *testing.T) {
	const n = 57

	var inFlight, maxInFlight atomic.Int32

	tasks := make([]Task[int], n)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			cur := inFlight.Add(1)
			for {
				prev := maxInFlight.Load()
				if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
					break
				}
			}
			// Later tasks settle before earlier ones.
			time.Sleep(time.Duration(50-i%50) * time.Microsecond)
			inFlight.Add(-1)
			return i * 10, nil
		}
	}

	var progress []int
	results := Run(context.Background(), tasks, Options{
		BatchSize:  25,
		OnProgress: func(completed int) { progress = append(progress, completed) },
	})

	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		if !r.OK || r.Value != i*10 {
			t.Fatalf("slot %d = %+v, want value %d", i, r, i*10)
		}
	}

	// Exactly 3 groups: 25, 25, 7.
	want := []int{25, 50, 57}
	if len(progress) != len(want) {
		t.Fatalf("progress calls = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Fatalf("progress calls = %v, want %v", progress, want)
		}
	}

	if maxInFlight.Load() > 25 {
		t.Fatalf("max in-flight = %d, want <= 25", maxInFlight.Load())
	}
}

func TestRunCapturesIndividualFailures(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task[string]{
		func(ctx context.Context) (string, error) { return "a", nil },
		func(ctx context.Context) (string, error) { return "", boom },
		func(ctx context.Context) (string, error) { return "c", nil },
	}

	results := Run(context.Background(), tasks, Options{BatchSize: 3})
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if !results[0].OK || results[0].Value != "a" {
		t.Errorf("slot 0 = %+v", results[0])
	}
	if results[1].OK {
		t.Errorf("slot 1 should have settled failed: %+v", results[1])
	}
	if !results[2].OK || results[2].Value != "c" {
		t.Errorf("slot 2 = %+v", results[2])
	}
}

func TestRunStopsAtGroupBoundaryOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := make([]Task[int], 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (int, error) {
			cancel() // triggers during the first group
			return i, nil
		}
	}

	results := Run(ctx, tasks, Options{BatchSize: 4})

	// First group settles; no further group starts.
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
}

func TestRunEmptyTasks(t *testing.T) {
	results := Run[int](context.Background(), nil, Options{BatchSize: 25})
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}
