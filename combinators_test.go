package async_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/flowtask/async"
)

func TestWhenAllEmptyInput(t *testing.T) {
	task := async.WhenAll[int]()
	if !task.Completed() || task.Faulted() || task.Cancelled() {
		t.Fatal("WhenAll with no inputs did not complete with Success immediately")
	}
}

func TestWhenAllMixedFailures(t *testing.T) {
	const n = 20

	tasks := make([]async.Task[int], n)
	for i := range tasks {
		i := i
		tasks[i] = async.NewTaskWithError[int](fmt.Errorf("task %d: %w", i, errors.New("boom")))
	}

	aggregate := async.WhenAll(tasks...)

	if !aggregate.Faulted() {
		t.Fatal("WhenAll over all-failing inputs did not fault")
	}

	var agg *async.AggregateError
	if !errors.As(aggregate.Error(), &agg) {
		t.Fatalf("aggregate.Error() = %v, want *AggregateError", aggregate.Error())
	}
	if len(agg.Errors) != n {
		t.Fatalf("len(agg.Errors) = %d, want %d", len(agg.Errors), n)
	}
}

func TestWhenAllWithOneCancelPrefersFailureOverCancel(t *testing.T) {
	tasks := []async.Task[int]{
		async.NewTask(1),
		async.NewTaskWithError[int](errors.New("boom")),
		async.CancelledTask[int](),
	}

	aggregate := async.WhenAll(tasks...)

	if !aggregate.Faulted() {
		t.Fatal("a failure among the inputs must win over a cancellation")
	}
}

func TestWhenAllCancelledWithoutFailures(t *testing.T) {
	const n = 20

	tasks := make([]async.Task[int], n)
	for i := range tasks {
		if i == n-1 {
			tasks[i] = async.CancelledTask[int]()
			continue
		}
		tasks[i] = async.NewTask(i)
	}

	aggregate := async.WhenAll(tasks...)

	if aggregate.Faulted() {
		t.Fatal("aggregate faulted with no failing inputs")
	}
	if !aggregate.Cancelled() {
		t.Fatal("aggregate did not cancel despite one cancelled input")
	}
}

func TestWhenAllResultPreservesInputOrder(t *testing.T) {
	tasks := []async.Task[int]{
		async.NewTask(10),
		async.NewTask(20),
		async.NewTask(30),
	}

	aggregate := async.WhenAllResult(tasks...)

	want := []int{10, 20, 30}
	got := aggregate.Result()
	if len(got) != len(want) {
		t.Fatalf("Result() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Result() = %v, want %v", got, want)
		}
	}
}

func TestWhenAnyEmptyInputPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("WhenAny with no inputs did not panic")
		}
	}()
	async.WhenAny[int]()
}

func TestWhenAnyFastFirst(t *testing.T) {
	const slow = 20

	fast := async.NewTaskSource[int]()
	tasks := []async.Task[int]{fast.Task()}

	slowSources := make([]*async.TaskSource[int], slow)
	for i := range slowSources {
		slowSources[i] = async.NewTaskSource[int]()
		tasks = append(tasks, slowSources[i].Task())
	}

	// fast is already Success, every slow source is still Pending: WhenAny
	// must pick fast deterministically and ignore whatever the slow ones
	// later resolve to.
	fast.SetResult(99)

	aggregate := async.WhenAny(tasks...)

	winner := aggregate.Result()
	if winner.Result() != 99 {
		t.Fatalf("WhenAny's winner = %d, want 99", winner.Result())
	}

	for i, s := range slowSources {
		s.TrySetResult(i)
	}
}
