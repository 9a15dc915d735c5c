package async_test

import (
	"errors"
	"testing"

	"github.com/flowtask/async"
)

func TestContinueWithAlwaysRuns(t *testing.T) {
	cancelled := async.CancelledTask[int]()

	ran := false
	sawCancelled := false
	result := async.ContinueWith(cancelled, func(t async.Task[int]) string {
		ran = true
		sawCancelled = t.Cancelled()
		return "seen"
	}, async.Immediate)

	if !ran {
		t.Fatal("ContinueWith did not invoke its closure on a Cancelled antecedent")
	}
	if !sawCancelled {
		t.Fatal("ContinueWith's closure did not observe the antecedent's Cancelled state")
	}
	if result.Result() != "seen" {
		t.Fatalf("Result() = %q, want %q", result.Result(), "seen")
	}
}

func TestContinueOnSuccessWithSkipsCancelled(t *testing.T) {
	cancelled := async.CancelledTask[int]()

	ran := false
	result := async.ContinueOnSuccessWith(cancelled, func(v int) int {
		ran = true
		return v + 1
	}, async.Immediate)

	if ran {
		t.Fatal("ContinueOnSuccessWith invoked its closure on a Cancelled antecedent")
	}
	if !result.Cancelled() {
		t.Fatal("result of ContinueOnSuccessWith on a Cancelled antecedent is not Cancelled")
	}
}

func TestContinueOnSuccessWithForwardsFailure(t *testing.T) {
	failWith := errors.New("upstream failure")
	failed := async.NewTaskWithError[int](failWith)

	ran := false
	result := async.ContinueOnSuccessWith(failed, func(v int) int {
		ran = true
		return v
	}, async.Immediate)

	if ran {
		t.Fatal("ContinueOnSuccessWith invoked its closure on a Failure antecedent")
	}
	if !result.Faulted() || !errors.Is(result.Error(), failWith) {
		t.Fatalf("result.Error() = %v, want %v", result.Error(), failWith)
	}
}

// TestContinueWithChainedFives mirrors the "chained fives" scenario: five
// continueWith stages attached in sequence, each incrementing a shared
// counter, starting from a cancelled antecedent.
func TestContinueWithChainedFives(t *testing.T) {
	var seen []int
	counter := 0

	step := func(async.Task[async.Void]) async.Void {
		counter++
		seen = append(seen, counter)
		return async.Void{}
	}

	t0 := async.CancelledTask[async.Void]()
	t1 := async.ContinueWith(t0, step, async.Immediate)
	t2 := async.ContinueWith(t1, step, async.Immediate)
	t3 := async.ContinueWith(t2, step, async.Immediate)
	t4 := async.ContinueWith(t3, step, async.Immediate)
	t5 := async.ContinueWith(t4, step, async.Immediate)

	t5.WaitUntilCompleted()

	if counter != 5 {
		t.Fatalf("counter = %d, want 5", counter)
	}
	want := []int{1, 2, 3, 4, 5}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestContinueWithTaskForwardsInnerState(t *testing.T) {
	source := async.NewTask(1)

	result := async.ContinueWithTask(source, func(t async.Task[int]) async.Task[string] {
		return async.NewTask("done")
	}, async.Immediate)

	if result.Result() != "done" {
		t.Fatalf("Result() = %q, want %q", result.Result(), "done")
	}
}

func TestContinueWithTaskForwardsPendingInnerLater(t *testing.T) {
	source := async.NewTask(1)
	inner := async.NewTaskSource[string]()

	result := async.ContinueWithTask(source, func(t async.Task[int]) async.Task[string] {
		return inner.Task()
	}, async.Immediate)

	if result.Completed() {
		t.Fatal("result completed before the inner Task did")
	}

	inner.SetResult("later")

	if result.Result() != "later" {
		t.Fatalf("Result() = %q, want %q", result.Result(), "later")
	}
}

func TestContinueWithCapturesPanic(t *testing.T) {
	source := async.NewTask(1)

	result := async.ContinueWith(source, func(t async.Task[int]) int {
		panic("continuation exploded")
	}, async.Immediate)

	if !result.Faulted() {
		t.Fatal("a panicking continuation did not produce a Failure task")
	}
}
